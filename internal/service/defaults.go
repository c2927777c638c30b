package service

import "gastos-backend/internal/domain"

// DefaultCategories is the fixed catalog bootstrapped at startup:
// five income categories and nine expense categories.
var DefaultCategories = []domain.Category{
	{Name: "Salario", Kind: domain.KindIncome, Description: "Sueldo mensual", Color: "#2ECC71", Icon: "💼"},
	{Name: "Freelance", Kind: domain.KindIncome, Description: "Trabajos por cuenta propia", Color: "#27AE60", Icon: "🧑‍💻"},
	{Name: "Inversiones", Kind: domain.KindIncome, Description: "Dividendos e intereses", Color: "#16A085", Icon: "📈"},
	{Name: "Regalos", Kind: domain.KindIncome, Description: "Dinero recibido como regalo", Color: "#1ABC9C", Icon: "🎁"},
	{Name: "Otros Ingresos", Kind: domain.KindIncome, Description: "Ingresos varios", Color: "#95A5A6", Icon: "💰"},

	{Name: "Alimentación", Kind: domain.KindExpense, Description: "Supermercado y comida", Color: "#E74C3C", Icon: "🛒"},
	{Name: "Transporte", Kind: domain.KindExpense, Description: "Transporte público y combustible", Color: "#E67E22", Icon: "🚌"},
	{Name: "Vivienda", Kind: domain.KindExpense, Description: "Alquiler, hipoteca y mantenimiento", Color: "#D35400", Icon: "🏠"},
	{Name: "Servicios", Kind: domain.KindExpense, Description: "Luz, agua, internet", Color: "#F39C12", Icon: "💡"},
	{Name: "Salud", Kind: domain.KindExpense, Description: "Médico y farmacia", Color: "#C0392B", Icon: "🏥"},
	{Name: "Educación", Kind: domain.KindExpense, Description: "Cursos, libros y formación", Color: "#8E44AD", Icon: "📚"},
	{Name: "Ocio", Kind: domain.KindExpense, Description: "Cine, restaurantes y tiempo libre", Color: "#9B59B6", Icon: "🎬"},
	{Name: "Ropa", Kind: domain.KindExpense, Description: "Ropa y calzado", Color: "#2980B9", Icon: "👕"},
	{Name: "Otros Gastos", Kind: domain.KindExpense, Description: "Gastos varios", Color: "#7F8C8D", Icon: "📦"},
}
