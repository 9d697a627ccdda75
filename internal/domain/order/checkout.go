package order

import (
	"fmt"
	"sync"

	domainErrors "github.com/plateful/ordering-service/internal/domain/errors"
)

type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "IDLE"
	CheckoutValidating CheckoutState = "VALIDATING"
	CheckoutReading    CheckoutState = "READING"
	CheckoutComputing  CheckoutState = "COMPUTING"
	CheckoutWriting    CheckoutState = "WRITING"
	CheckoutFinalizing CheckoutState = "FINALIZING"
	CheckoutSuccess    CheckoutState = "SUCCESS"
	CheckoutFailed     CheckoutState = "FAILED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutSuccess || s == CheckoutFailed
}

func (s CheckoutState) String() string {
	return string(s)
}

// checkoutTransitions is the legal edge set of the checkout machine. The
// happy path walks Validating through Finalizing to Success; every I/O or
// validation failure before Finalizing drops to Failed. Terminal states only
// leave through Begin.
var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutValidating: {CheckoutReading, CheckoutFailed},
	CheckoutReading:    {CheckoutComputing, CheckoutFailed},
	CheckoutComputing:  {CheckoutWriting, CheckoutFailed},
	CheckoutWriting:    {CheckoutFinalizing, CheckoutFailed},
	CheckoutFinalizing: {CheckoutSuccess},
}

// CheckoutMachine serializes checkout attempts for one user. Begin is the
// only entry point: it admits a new attempt solely from Idle or a terminal
// state, so a second Run while one is in flight is rejected without touching
// the first.
type CheckoutMachine struct {
	mu    sync.Mutex
	state CheckoutState
}

func NewCheckoutMachine() *CheckoutMachine {
	return &CheckoutMachine{state: CheckoutIdle}
}

func (m *CheckoutMachine) State() CheckoutState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *CheckoutMachine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case CheckoutIdle, CheckoutSuccess, CheckoutFailed:
		m.state = CheckoutValidating
		return nil
	default:
		return domainErrors.ErrCheckoutInProgress
	}
}

func (m *CheckoutMachine) Transition(to CheckoutState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, allowed := range checkoutTransitions[m.state] {
		if allowed == to {
			m.state = to
			return nil
		}
	}

	return fmt.Errorf("invalid checkout transition from %s to %s", m.state, to)
}
