package service

import (
	"github.com/mmynk/brunchsplit/internal/middleware"
	"github.com/mmynk/brunchsplit/internal/models"
	"github.com/mmynk/brunchsplit/internal/present"
)

// ServiceName is the fully-qualified name of the session service.
const ServiceName = "brunchsplit.v1.SessionService"

// Procedure paths.
const (
	GetSessionProcedure    = "/" + ServiceName + "/GetSession"
	SetGuestNameProcedure  = "/" + ServiceName + "/SetGuestName"
	SetAssignmentProcedure = "/" + ServiceName + "/SetAssignment"
	CalculateProcedure     = "/" + ServiceName + "/Calculate"
)

// UnassignedItemsHeader carries the comma-separated indices of unassigned
// items on a FailedPrecondition error from Calculate.
const UnassignedItemsHeader = middleware.UnassignedItemsHeader

type GetSessionRequest struct{}

type SetGuestNameRequest struct {
	LastName string `json:"last_name"`
}

type SetAssignmentRequest struct {
	Item     int  `json:"item"`
	Guest    int  `json:"guest"`
	Assigned bool `json:"assigned"`
}

type CalculateRequest struct{}

// GuestView is one guest as shown to clients.
type GuestView struct {
	Index       int    `json:"index"`
	First       string `json:"first"`
	Last        string `json:"last,omitempty"`
	DisplayName string `json:"display_name"`
	Editable    bool   `json:"editable,omitempty"`
}

// ItemView is one item with the guests currently checked for it.
type ItemView struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Guests []int   `json:"guests"`
}

// ResultView is one guest's share with raw and display amounts.
type ResultView struct {
	Guest    int             `json:"guest"`
	Name     string          `json:"name"`
	PreTax   float64         `json:"pre_tax"`
	TaxShare float64         `json:"tax_share"`
	TipShare float64         `json:"tip_share"`
	Total    float64         `json:"total"`
	Display  present.Figures `json:"display"`
}

// SessionState is the full session as returned by GetSession and mutations.
type SessionState struct {
	Title   string               `json:"title"`
	Guests  []GuestView          `json:"guests"`
	Items   []ItemView           `json:"items"`
	Totals  models.ReceiptTotals `json:"totals"`
	Results []ResultView         `json:"results,omitempty"`
}

type CalculateResponse struct {
	CalculationID string       `json:"calculation_id"`
	Results       []ResultView `json:"results"`
}

func toResultViews(results []models.GuestResult) []ResultView {
	if results == nil {
		return nil
	}
	views := make([]ResultView, len(results))
	for i, r := range results {
		views[i] = ResultView{
			Guest:    r.Guest,
			Name:     r.Name,
			PreTax:   r.PreTax,
			TaxShare: r.TaxShare,
			TipShare: r.TipShare,
			Total:    r.Total,
			Display:  present.Format(r),
		}
	}
	return views
}
