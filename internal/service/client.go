package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client calls a SessionService.
type Client struct {
	getSession    *connect.Client[GetSessionRequest, SessionState]
	setGuestName  *connect.Client[SetGuestNameRequest, SessionState]
	setAssignment *connect.Client[SetAssignmentRequest, SessionState]
	calculate     *connect.Client[CalculateRequest, CalculateResponse]
}

// NewClient creates a client for the service at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &Client{
		getSession:    connect.NewClient[GetSessionRequest, SessionState](httpClient, baseURL+GetSessionProcedure, opts...),
		setGuestName:  connect.NewClient[SetGuestNameRequest, SessionState](httpClient, baseURL+SetGuestNameProcedure, opts...),
		setAssignment: connect.NewClient[SetAssignmentRequest, SessionState](httpClient, baseURL+SetAssignmentProcedure, opts...),
		calculate:     connect.NewClient[CalculateRequest, CalculateResponse](httpClient, baseURL+CalculateProcedure, opts...),
	}
}

func (c *Client) GetSession(ctx context.Context) (*SessionState, error) {
	resp, err := c.getSession.CallUnary(ctx, connect.NewRequest(&GetSessionRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) SetGuestName(ctx context.Context, lastName string) (*SessionState, error) {
	resp, err := c.setGuestName.CallUnary(ctx, connect.NewRequest(&SetGuestNameRequest{LastName: lastName}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) SetAssignment(ctx context.Context, item, guest int, assigned bool) (*SessionState, error) {
	resp, err := c.setAssignment.CallUnary(ctx, connect.NewRequest(&SetAssignmentRequest{
		Item:     item,
		Guest:    guest,
		Assigned: assigned,
	}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) Calculate(ctx context.Context) (*CalculateResponse, error) {
	resp, err := c.calculate.CallUnary(ctx, connect.NewRequest(&CalculateRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
