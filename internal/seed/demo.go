package seed

import "github.com/Simplici0/bizness/internal/validation"

type demoProduct struct {
	name         string
	category     string
	hpp          float64
	sellingPrice float64
	stock        int
}

type demoFile struct {
	key       string
	parent    string
	name      string
	fileType  string
	size      int64
	createdAt string
}

type demoTransaction struct {
	kind        string
	description string
	amount      float64
	date        string
}

type demoBusiness struct {
	name         string
	category     string
	logo         string
	createdAt    string
	products     []demoProduct
	files        []demoFile
	transactions []demoTransaction
}

var demoBusinesses = []demoBusiness{
	{
		name:      "Kopi Nusantara",
		category:  "Food & Beverage",
		logo:      "☕",
		createdAt: "2024-03-20",
		products: []demoProduct{
			{"Espresso", "Coffee", 8000, 18000, 150},
			{"Cappuccino", "Coffee", 12000, 25000, 120},
			{"Latte", "Coffee", 13000, 28000, 100},
			{"Americano", "Coffee", 9000, 20000, 80},
			{"Croissant", "Pastry", 15000, 35000, 25},
			{"Cheese Cake", "Pastry", 22000, 45000, 8},
			{"Matcha Latte", "Tea", 14000, 30000, 60},
			{"Earl Grey", "Tea", 6000, 15000, 45},
		},
		files: []demoFile{
			{"reports", "", "Financial Reports", validation.FileFolder, 0, "2024-03-20"},
			{"receipts", "", "Receipts", validation.FileFolder, 0, "2024-03-21"},
			{"q1", "reports", "Q1 Report.pdf", validation.FilePDF, 2450000, "2024-04-01"},
			{"inventory", "reports", "Inventory.xlsx", validation.FileXLSX, 156000, "2024-04-05"},
			{"invoice", "receipts", "Supplier Invoice.pdf", validation.FilePDF, 890000, "2024-04-10"},
		},
		transactions: []demoTransaction{
			{validation.TransactionSale, "Daily Sales", 2450000, "2024-04-15"},
			{validation.TransactionPurchase, "Coffee Beans Supply", -850000, "2024-04-14"},
			{validation.TransactionSale, "Daily Sales", 1980000, "2024-04-14"},
			{validation.TransactionExpense, "Utility Bills", -450000, "2024-04-13"},
			{validation.TransactionSale, "Daily Sales", 3120000, "2024-04-13"},
		},
	},
	{
		name:      "Urban Threads",
		category:  "Fashion & Apparel",
		logo:      "👕",
		createdAt: "2024-02-10",
		products: []demoProduct{
			{"Basic T-Shirt", "Tops", 45000, 120000, 85},
			{"Denim Jeans", "Bottoms", 120000, 350000, 45},
			{"Hoodie", "Outerwear", 95000, 280000, 30},
			{"Polo Shirt", "Tops", 55000, 150000, 60},
			{"Cargo Pants", "Bottoms", 85000, 250000, 5},
			{"Summer Dress", "Dresses", 110000, 320000, 20},
		},
		files: []demoFile{
			{"designs", "", "Designs", validation.FileFolder, 0, "2024-02-10"},
			{"logo", "designs", "Logo.png", validation.FilePNG, 450000, "2024-02-12"},
			{"catalog", "", "Catalog.pdf", validation.FilePDF, 5600000, "2024-03-01"},
		},
		transactions: []demoTransaction{
			{validation.TransactionSale, "Online Orders", 4850000, "2024-04-15"},
			{validation.TransactionPurchase, "Fabric Supply", -2200000, "2024-04-12"},
			{validation.TransactionSale, "Store Sales", 3200000, "2024-04-11"},
		},
	},
}
