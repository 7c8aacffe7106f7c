package services

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"valleycars/internal/domain"
	"valleycars/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// decorationPrices are flat add-ons outside the pricing engine.
var decorationPrices = map[string]int64{
	"no":         0,
	"artificial": 0,
	"fresh":      7000,
}

// Quote is a priced enquiry ready to be shared with the operator.
type Quote struct {
	Message         string         `json:"message"`
	WhatsAppURL     string         `json:"whatsappUrl"`
	Estimate        EstimateResult `json:"estimate"`
	DecorationCost  int64          `json:"decorationCost"`
	TotalWithExtras int64          `json:"totalWithExtras"`
}

type QuoteService struct {
	Estimates      EstimateService
	WhatsAppNumber string
	RequestID      string
	Now            func() time.Time
	Estimator      func(context.Context, domain.EstimateRequest) (EstimateResult, error)
}

func (s QuoteService) estimate(ctx context.Context, req domain.EstimateRequest) (EstimateResult, error) {
	if s.Estimator != nil {
		return s.Estimator(ctx, req)
	}
	return s.Estimates.Estimate(ctx, req)
}

func (s QuoteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Share prices req and builds the enquiry message and its wa.me link.
func (s QuoteService) Share(ctx context.Context, req domain.QuoteRequest) (Quote, error) {
	res, err := s.estimate(ctx, req.EstimateRequest)
	if err != nil {
		return Quote{}, err
	}
	decor := DecorationCost(req.WantDecoration, req.DecorationType)
	msg := ShareMessage(req, res)
	utils.LogEvent(s.RequestID, "quotes", "share", fmt.Sprintf("car_id=%s total=%d", res.Car.ID, res.Estimate.Total+decor))
	return Quote{
		Message:         msg,
		WhatsAppURL:     WhatsAppURL(s.WhatsAppNumber, msg),
		Estimate:        res,
		DecorationCost:  decor,
		TotalWithExtras: res.Estimate.Total + decor,
	}, nil
}

// PDF prices req and renders a printable quote.
func (s QuoteService) PDF(ctx context.Context, req domain.QuoteRequest) ([]byte, string, error) {
	res, err := s.estimate(ctx, req.EstimateRequest)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "quotes", "pdf", "car_id="+res.Car.ID)
	return buildQuotePDF(req, res, s.now())
}

// DecorationCost is zero unless decoration was requested; unknown types cost nothing.
func DecorationCost(want, decorationType string) int64 {
	if !strings.EqualFold(strings.TrimSpace(want), "yes") {
		return 0
	}
	return decorationPrices[strings.ToLower(strings.TrimSpace(decorationType))]
}

// ShareMessage renders the WhatsApp enquiry text. Empty optional fields are omitted.
func ShareMessage(req domain.QuoteRequest, res EstimateResult) string {
	lines := []string{"*Valley Wedding Cars Enquiry*"}
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Name", req.FullName)
	add("Phone", req.Phone)
	add("Email", req.Email)
	add("Enquiry Type", req.EnquiryType)
	add("Service Type", req.ServiceType)
	add("Event Date", req.EventDate)
	add("Event Time", req.EventTime)
	lines = append(lines,
		"Vehicle: "+safe(res.Car.Name, "-"),
		"Start Location: "+safe(req.Pickup, "-"),
		"End Location: "+safe(req.Dropoff, "-"),
		"Driving Option: "+safe(req.DrivingOption, "-"),
	)
	if strings.EqualFold(strings.TrimSpace(req.WantDecoration), "yes") {
		lines = append(lines, "Decoration: "+safe(req.DecorationType, "Requested"))
	} else {
		lines = append(lines, "Decoration: No")
	}
	if strings.EqualFold(strings.TrimSpace(req.WantNamePlate), "yes") {
		lines = append(lines, "Name Plate: "+safe(req.NamePlateDetails, "Yes"))
	}

	est := res.Estimate
	decor := DecorationCost(req.WantDecoration, req.DecorationType)
	lines = append(lines, "", "*Price Breakdown*")
	lines = append(lines, "Vehicle Base: "+utils.FormatINR(roundRupees(est.Base)))
	if est.PerKmComponent > 0 {
		lines = append(lines, "Distance Component: "+utils.FormatINR(roundRupees(est.PerKmComponent)))
	}
	if decor > 0 {
		lines = append(lines, "Decoration: "+utils.FormatINR(decor))
	}
	for _, a := range est.Adjustments {
		lines = append(lines, a.RuleName+": "+utils.FormatSignedINR(a.Delta))
	}
	lines = append(lines, "Total Estimate: "+utils.FormatINR(est.Total+decor))

	if sr := strings.TrimSpace(req.SpecialRequests); sr != "" {
		lines = append(lines, "", "*Special Requests*", sr)
	}
	return strings.Join(lines, "\n")
}

// WhatsAppURL builds a wa.me link. Non-digits are stripped from number; an
// empty number lets the user pick the chat.
func WhatsAppURL(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, text)
}

func buildQuotePDF(req domain.QuoteRequest, res EstimateResult, issuedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quote", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VALLEY WEDDING CARS - QUOTE")
	pdf.Ln(12)

	quoteNo := fmt.Sprintf("QT-%s-%s", issuedAt.UTC().Format("20060102"), safeFilenamePart(shortID(res.Car.ID)))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Quote No    : "+quoteNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued      : "+issuedAt.UTC().Format("2006-01-02 15:04")+" UTC")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Customer:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	customer := []string{
		fmt.Sprintf("Name        : %s", safe(req.FullName, "-")),
		fmt.Sprintf("Phone       : %s", safe(req.Phone, "-")),
		fmt.Sprintf("Event       : %s %s", safe(req.EventDate, "-"), strings.TrimSpace(req.EventTime)),
		fmt.Sprintf("Vehicle     : %s (%s)", safe(res.Car.Name, "-"), safe(string(res.Car.Category), "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(req.Pickup, "-"), safe(req.Dropoff, "-")),
		fmt.Sprintf("Trip scope  : %s", res.Scope),
		fmt.Sprintf("Trip date   : %s", safe(dateOnly(res.Date), "-")),
	}
	for _, line := range customer {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	est := res.Estimate
	decor := DecorationCost(req.WantDecoration, req.DecorationType)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Price breakdown:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	row := func(label, amount string) {
		pdf.CellFormat(120, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, amount, "", 1, "R", false, 0, "")
	}
	row("Vehicle base", pdfAmount(roundRupees(est.Base)))
	if est.PerKmComponent > 0 {
		row("Distance component", pdfAmount(roundRupees(est.PerKmComponent)))
	}
	for _, a := range est.Adjustments {
		row(a.RuleName, pdfSignedAmount(a.Delta))
	}
	if decor > 0 {
		row("Decoration ("+safe(req.DecorationType, "-")+")", pdfAmount(decor))
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Total estimate", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, pdfAmount(est.Total+decor), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This is an estimate. Final pricing is confirmed by Valley Wedding Cars at booking.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("QUOTE_%s_%s.pdf", issuedAt.UTC().Format("20060102"), safeFilenamePart(req.FullName+"_"+res.Car.Name))
	return buf.Bytes(), filename, nil
}

// Core PDF fonts have no rupee glyph.
func pdfAmount(v int64) string {
	return strings.Replace(utils.FormatINR(v), "₹", "Rs ", 1)
}

func pdfSignedAmount(delta float64) string {
	return strings.Replace(utils.FormatSignedINR(delta), "₹", "Rs ", 1)
}

func roundRupees(v float64) int64 {
	return int64(math.Round(v))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
