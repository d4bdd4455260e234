package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/timeutil"
)

// ReportService aggregates the dashboard summary and renders invoice PDFs
type ReportService struct {
	sales    *repositories.SaleRepository
	credits  *repositories.CreditRepository
	expenses *repositories.ExpenseRepository
	settings *repositories.AppSettingRepository
}

func NewReportService(
	sales *repositories.SaleRepository,
	credits *repositories.CreditRepository,
	expenses *repositories.ExpenseRepository,
	settings *repositories.AppSettingRepository,
) *ReportService {
	return &ReportService{sales: sales, credits: credits, expenses: expenses, settings: settings}
}

// DashboardSummary is the landing-page aggregate
type DashboardSummary struct {
	TotalSales      float64                     `json:"total_sales"`
	TotalReceived   float64                     `json:"total_received"`
	TotalPending    float64                     `json:"total_pending"`
	SaleCount       int                         `json:"sale_count"`
	TotalExpenses   float64                     `json:"total_expenses"`
	CreditsGiven    float64                     `json:"credits_given"`
	CreditsTaken    float64                     `json:"credits_taken"`
	CreditsOverdue  int                         `json:"credits_overdue"`
	CreditsByStatus map[models.CreditStatus]int `json:"credits_by_status"`
}

func (s *ReportService) Summary(ctx context.Context, ownerID int) (*DashboardSummary, error) {
	summary := &DashboardSummary{CreditsByStatus: make(map[models.CreditStatus]int)}

	var err error
	summary.TotalSales, summary.TotalReceived, summary.TotalPending, summary.SaleCount, err =
		s.sales.DashboardTotals(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary.TotalExpenses, err = s.expenses.Total(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	credits, err := s.credits.List(ctx, ownerID, "", "")
	if err != nil {
		return nil, err
	}
	for _, c := range credits {
		switch c.CreditType {
		case models.CreditTypeGiven, models.CreditTypeCash:
			summary.CreditsGiven += c.RemainingAmount
		case models.CreditTypeTaken:
			summary.CreditsTaken += c.RemainingAmount
		}
		summary.CreditsByStatus[c.Status]++
		if c.Status == models.CreditStatusOverdue {
			summary.CreditsOverdue++
		}
	}

	return summary, nil
}

func (s *ReportService) businessHeader(ctx context.Context, ownerID int) (name, address, gst string) {
	name = "Invoice"
	if setting, err := s.settings.Get(ctx, ownerID, models.SettingBusinessName); err == nil && setting.SettingValue != "" {
		name = setting.SettingValue
	}
	if setting, err := s.settings.Get(ctx, ownerID, models.SettingAddress); err == nil {
		address = setting.SettingValue
	}
	if setting, err := s.settings.Get(ctx, ownerID, models.SettingGSTNumber); err == nil {
		gst = setting.SettingValue
	}
	return
}

// GenerateInvoicePDF renders one sale as a printable A4 invoice
func (s *ReportService) GenerateInvoicePDF(ctx context.Context, id, ownerID int) ([]byte, error) {
	sale, err := s.sales.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	businessName, address, gst := s.businessHeader(ctx, ownerID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if address != "" {
		pdf.CellFormat(190, 6, address, "", 1, "C", false, 0, "")
	}
	if gst != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("GSTIN: %s", gst), "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Invoice Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Invoice %s", sale.InvoiceNumber), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", sale.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", sale.CustomerPhone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", timeutil.ToIST(sale.CreatedAt).Format(timeutil.DisplayLayout)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", sale.PaymentStatus), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "C", true, 0, "")

	// Items
	pdf.SetFont("Arial", "", 10)
	for _, item := range sale.Items {
		name := item.ProductName
		if len(name) > 45 {
			name = name[:42] + "..."
		}
		pdf.CellFormat(90, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("Rs. %.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("Rs. %.2f", item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Totals
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(150, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", sale.TotalAmount), "1", 1, "R", false, 0, "")
	if sale.Discount > 0 {
		pdf.CellFormat(150, 7, "Discount", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", sale.Discount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 7, "Final Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", sale.FinalAmount), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(150, 7, "Paid", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("Rs. %.2f", sale.PaidAmount), "1", 1, "R", false, 0, "")

	// Balance - highlight if outstanding
	pending := sale.PendingAmount()
	if pending > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Balance Due: Rs. %.2f", pending)
	if pending <= 0 {
		balanceText = "FULLY PAID"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
