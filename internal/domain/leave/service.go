package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, req ApplyRequest) (RequestResponse, error)
	Cancel(ctx context.Context, id, employeeID string) error
	MyRequests(ctx context.Context, employeeID string, year int) ([]RequestResponse, error)
	MyBalances(ctx context.Context, employeeID string, year int) ([]Balance, error)
	ListPending(ctx context.Context, page, limit int) (ListRequestsResponse, error)
	Approve(ctx context.Context, req ReviewRequest) (RequestResponse, error)
	Reject(ctx context.Context, req ReviewRequest) (RequestResponse, error)
}
