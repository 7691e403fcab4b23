package requests

import (
	"sync"

	"github.com/MikelBai/Bank-management-application/internal/domain"
)

type reverter interface {
	CanRevert(t *domain.Transaction) (bool, error)
	Revert(t *domain.Transaction) (bool, error)
}

// RevertRequest is one customer's pending ask to undo a transaction.
type RevertRequest struct {
	Username    string
	Transaction *domain.Transaction
}

// Coordinator queues revert requests for approval. Its one hard guarantee is
// at most one outstanding request per transaction: a transaction already in
// the queue cannot be submitted again until an approver rejects it or the
// revert goes through.
type Coordinator struct {
	mu      sync.Mutex
	engine  reverter
	pending []*RevertRequest
}

func NewCoordinator(engine reverter) *Coordinator {
	return &Coordinator{engine: engine}
}

// Submit queues a revert request if the transaction currently reports itself
// revertible and has no request outstanding.
func (c *Coordinator) Submit(username string, t *domain.Transaction) (bool, error) {
	ok, err := c.engine.CanRevert(t)
	if err != nil || !ok {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t.Lock()
	defer t.Unlock()
	if t.RevertRequested() {
		return false, nil
	}
	t.SetRevertRequested(true)

	c.pending = append(c.pending, &RevertRequest{Username: username, Transaction: t})
	return true, nil
}

// Approve reverts the queued request at index. The request leaves the queue
// only when the revert succeeds; a failed revert keeps it pending for the
// approver to retry or reject.
func (c *Coordinator) Approve(index int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.pending) {
		return false, domain.ErrTransactionNotFound
	}
	request := c.pending[index]

	ok, err := c.engine.Revert(request.Transaction)
	if err != nil || !ok {
		return false, err
	}

	c.remove(index)
	return true, nil
}

// Reject drops the queued request and clears the transaction's outstanding
// flag so the holder may request again later.
func (c *Coordinator) Reject(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.pending) {
		return domain.ErrTransactionNotFound
	}
	request := c.pending[index]

	request.Transaction.Lock()
	request.Transaction.SetRevertRequested(false)
	request.Transaction.Unlock()

	c.remove(index)
	return nil
}

func (c *Coordinator) Pending() []*RevertRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*RevertRequest, len(c.pending))
	copy(out, c.pending)
	return out
}

func (c *Coordinator) remove(index int) {
	c.pending = append(c.pending[:index], c.pending[index+1:]...)
}
