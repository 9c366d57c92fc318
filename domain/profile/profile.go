// Package profile models the merchant profile: the structured record of
// a store's identity, performance, customer base, and local trends that
// capabilities read and the planner summarizes.
package profile

import (
	"fmt"
	"strings"
)

// Section names match the top-level keys of the stored profile
// document. Update addresses fields by section and key.
const (
	SectionBasicInfo   = "basic_info"
	SectionPerformance = "performance"
	SectionCustomers   = "customers"
	SectionTrends      = "trends"
)

// BasicInfo identifies the store.
type BasicInfo struct {
	StoreName  string `json:"store_name"`
	MaskedName string `json:"masked_name,omitempty"`
	Industry   string `json:"industry,omitempty"`
	District   string `json:"district,omitempty"`
	Address    string `json:"address,omitempty"`
	OpenedAt   string `json:"opened_at,omitempty"`
}

// Performance captures core sales figures.
type Performance struct {
	MonthlySales     string `json:"monthly_sales,omitempty"`
	SalesTrend       string `json:"sales_trend,omitempty"`
	AvgTicket        string `json:"avg_ticket,omitempty"`
	PeakHours        string `json:"peak_hours,omitempty"`
	DeliveryShare    string `json:"delivery_share,omitempty"`
	RepeatRate       string `json:"repeat_rate,omitempty"`
	IndustryPosition string `json:"industry_position,omitempty"`
}

// Customers describes the customer base.
type Customers struct {
	MainSegment    string `json:"main_segment,omitempty"`
	GenderSplit    string `json:"gender_split,omitempty"`
	AgeBands       string `json:"age_bands,omitempty"`
	NewVsReturning string `json:"new_vs_returning,omitempty"`
	ResidentShare  string `json:"resident_share,omitempty"`
}

// Trends summarizes the store's commercial district.
type Trends struct {
	DistrictTraffic string `json:"district_traffic,omitempty"`
	Competition     string `json:"competition,omitempty"`
	Seasonality     string `json:"seasonality,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Core is the structured body of a profile document.
type Core struct {
	BasicInfo   BasicInfo   `json:"basic_info"`
	Performance Performance `json:"performance"`
	Customers   Customers   `json:"customers"`
	Trends      Trends      `json:"trends"`
}

// Profile is a merchant profile as loaded from a store.
type Profile struct {
	ID   string `json:"id"`
	Core Core   `json:"core"`
}

// StoreName returns the display name of the store.
func (p *Profile) StoreName() string {
	return p.Core.BasicInfo.StoreName
}

// Summary renders the compact profile digest injected into planner and
// synthesizer prompts. Empty fields are omitted.
func (p *Profile) Summary() string {
	b := &strings.Builder{}
	line := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(b, "- %s: %s\n", label, value)
	}
	line("Store", p.Core.BasicInfo.StoreName)
	line("Industry", p.Core.BasicInfo.Industry)
	line("District", p.Core.BasicInfo.District)
	line("Monthly sales", p.Core.Performance.MonthlySales)
	line("Sales trend", p.Core.Performance.SalesTrend)
	line("Average ticket", p.Core.Performance.AvgTicket)
	line("Delivery share", p.Core.Performance.DeliveryShare)
	line("Repeat rate", p.Core.Performance.RepeatRate)
	line("Main customers", p.Core.Customers.MainSegment)
	line("New vs returning", p.Core.Customers.NewVsReturning)
	line("District traffic", p.Core.Trends.DistrictTraffic)
	line("Competition", p.Core.Trends.Competition)
	return strings.TrimRight(b.String(), "\n")
}
