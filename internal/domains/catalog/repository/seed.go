package repository

import (
	"library-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
)

// SeedBooks là catalog mặc định nạp lúc khởi động
func SeedBooks() []model.Book {
	return []model.Book{
		{
			ID: "1", Title: "Introduction to Algorithms", Author: "Thomas H. Cormen",
			ISBN: "978-0262033848", TotalCopies: 5, AvailableCopies: 2,
			ShelfLocation: "CS-A1", CoverColor: "bg-primary",
			ReplacementCost: decimal.RequireFromString("89.99"), Department: model.DepartmentComputerScience,
		},
		{
			ID: "2", Title: "Clean Code", Author: "Robert C. Martin",
			ISBN: "978-0132350884", TotalCopies: 3, AvailableCopies: 0,
			ShelfLocation: "CS-B2", CoverColor: "bg-accent",
			ReplacementCost: decimal.RequireFromString("45.00"), Department: model.DepartmentComputerScience,
		},
		{
			ID: "3", Title: "Microelectronic Circuits", Author: "Adel S. Sedra",
			ISBN: "978-0199339136", TotalCopies: 4, AvailableCopies: 3,
			ShelfLocation: "EC-C3", CoverColor: "bg-secondary",
			ReplacementCost: decimal.RequireFromString("120.50"), Department: model.DepartmentElectronics,
		},
		{
			ID: "4", Title: "Electric Machinery Fundamentals", Author: "Stephen J. Chapman",
			ISBN: "978-0073529547", TotalCopies: 2, AvailableCopies: 1,
			ShelfLocation: "EE-D1", CoverColor: "bg-borrowed",
			ReplacementCost: decimal.RequireFromString("98.75"), Department: model.DepartmentElectrical,
		},
		{
			ID: "5", Title: "Structural Analysis", Author: "R. C. Hibbeler",
			ISBN: "978-0134610672", TotalCopies: 3, AvailableCopies: 0,
			ShelfLocation: "CV-E2", CoverColor: "bg-muted",
			ReplacementCost: decimal.RequireFromString("110.00"), Department: model.DepartmentCivil,
		},
		{
			ID: "6", Title: "Engineering Thermodynamics", Author: "P. K. Nag",
			ISBN: "978-9339204877", TotalCopies: 6, AvailableCopies: 4,
			ShelfLocation: "ME-F4", CoverColor: "bg-available",
			ReplacementCost: decimal.RequireFromString("35.25"), Department: model.DepartmentMechanical,
		},
		{
			ID: "7", Title: "Higher Engineering Mathematics", Author: "B. S. Grewal",
			ISBN: "978-8174091956", TotalCopies: 8, AvailableCopies: 5,
			ShelfLocation: "MA-G1", CoverColor: "bg-warning",
			ReplacementCost: decimal.RequireFromString("25.00"), Department: model.DepartmentMathematics,
		},
		{
			ID: "8", Title: "Design Patterns", Author: "Erich Gamma",
			ISBN: "978-0201633610", TotalCopies: 2, AvailableCopies: 1,
			ShelfLocation: "CS-B3", CoverColor: "bg-overdue",
			ReplacementCost: decimal.RequireFromString("54.99"), Department: model.DepartmentComputerScience,
		},
	}
}
