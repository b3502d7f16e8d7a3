// Package service exposes a bill-splitting session over Connect RPC.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/brunchsplit/internal/calculator"
	"github.com/mmynk/brunchsplit/internal/metrics"
	"github.com/mmynk/brunchsplit/internal/middleware"
	"github.com/mmynk/brunchsplit/internal/present"
	"github.com/mmynk/brunchsplit/internal/session"
)

// SessionService serves the one session owned by the process.
type SessionService struct {
	session *session.Session
	metrics *metrics.Metrics
}

// NewSessionService creates a SessionService over sess.
func NewSessionService(sess *session.Session, m *metrics.Metrics) *SessionService {
	return &SessionService{session: sess, metrics: m}
}

// Handler returns an http.Handler routing every procedure of the service.
// opts are applied to each procedure, e.g. connect.WithInterceptors.
func (s *SessionService) Handler(opts ...connect.HandlerOption) http.Handler {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetSessionProcedure, connect.NewUnaryHandler(GetSessionProcedure, s.GetSession, opts...))
	mux.Handle(SetGuestNameProcedure, connect.NewUnaryHandler(SetGuestNameProcedure, s.SetGuestName, opts...))
	mux.Handle(SetAssignmentProcedure, connect.NewUnaryHandler(SetAssignmentProcedure, s.SetAssignment, opts...))
	mux.Handle(CalculateProcedure, connect.NewUnaryHandler(CalculateProcedure, s.Calculate, opts...))
	return mux
}

func (s *SessionService) state() *SessionState {
	st := s.session.Snapshot()

	guests := make([]GuestView, len(st.Guests))
	for i, g := range st.Guests {
		guests[i] = GuestView{
			Index:       i,
			First:       g.First,
			Last:        g.Last,
			DisplayName: g.DisplayName(),
			Editable:    i == st.EditableGuest,
		}
	}

	items := make([]ItemView, len(st.Items))
	for i, item := range st.Items {
		assigned := []int{}
		for g, on := range st.Checked[i] {
			if on {
				assigned = append(assigned, g)
			}
		}
		items[i] = ItemView{Index: i, Name: item.Name, Price: item.Price, Guests: assigned}
	}

	return &SessionState{
		Title:   st.Title,
		Guests:  guests,
		Items:   items,
		Totals:  st.Totals,
		Results: toResultViews(st.Results),
	}
}

// GetSession returns the current session state.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[SessionState], error) {
	return connect.NewResponse(s.state()), nil
}

// SetGuestName updates the editable guest's last name.
func (s *SessionService) SetGuestName(ctx context.Context, req *connect.Request[SetGuestNameRequest]) (*connect.Response[SessionState], error) {
	if err := s.session.SetEditableName(req.Msg.LastName); err != nil {
		slog.Error("SetGuestName failed", "error", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	slog.Debug("Guest renamed", "last_name", strings.TrimSpace(req.Msg.LastName))
	return connect.NewResponse(s.state()), nil
}

// SetAssignment checks or unchecks one (item, guest) box.
func (s *SessionService) SetAssignment(ctx context.Context, req *connect.Request[SetAssignmentRequest]) (*connect.Response[SessionState], error) {
	slog.Debug("Setting assignment",
		"item", req.Msg.Item,
		"guest", req.Msg.Guest,
		"assigned", req.Msg.Assigned,
	)
	if err := s.session.SetAssigned(req.Msg.Item, req.Msg.Guest, req.Msg.Assigned); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	s.metrics.Toggles.Inc()
	return connect.NewResponse(s.state()), nil
}

// Calculate runs the allocation over the current assignment.
func (s *SessionService) Calculate(ctx context.Context, req *connect.Request[CalculateRequest]) (*connect.Response[CalculateResponse], error) {
	results, err := s.session.Calculate()
	if err != nil {
		var incomplete *calculator.IncompleteAssignmentError
		if errors.As(err, &incomplete) {
			s.metrics.Calculations.WithLabelValues(metrics.OutcomeIncomplete).Inc()
			connectErr := connect.NewError(connect.CodeFailedPrecondition, errors.New(present.IncompleteMessage))
			connectErr.Meta().Set(UnassignedItemsHeader, joinInts(incomplete.Items))
			return nil, connectErr
		}
		s.metrics.Calculations.WithLabelValues(metrics.OutcomeError).Inc()
		slog.Error("Calculate failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.Calculations.WithLabelValues(metrics.OutcomeOK).Inc()

	id := uuid.New().String()
	for _, r := range results {
		slog.Debug("Guest share",
			"calculation_id", id,
			"guest", r.Name,
			"pre_tax", r.PreTax,
			"tax", r.TaxShare,
			"tip", r.TipShare,
			"total", r.Total,
		)
	}

	resp := connect.NewResponse(&CalculateResponse{
		CalculationID: id,
		Results:       toResultViews(results),
	})
	resp.Header().Set(middleware.CalculationIDHeader, id)
	return resp, nil
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
