package analyzer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/arloliu/go-b1500/b1500"
	"github.com/arloliu/go-b1500/logger"
	"github.com/arloliu/go-b1500/transport"
)

// ErrSlotOccupied indicates that a module is already registered in the slot.
var ErrSlotOccupied = errors.New("slot occupied")

// Module is a plug-in module of the mainframe.
type Module interface {
	Slot() int
	Channel() b1500.ChNr
	Name() string
	Model() string
}

// InstrumentError is one entry of the instrument error queue.
type InstrumentError struct {
	Code    int
	Message string
}

func (e *InstrumentError) Error() string {
	return fmt.Sprintf("instrument error %d: %s", e.Code, e.Message)
}

// Mainframe drives a B1500 mainframe: the commands that address the whole
// instrument and the registry of its modules.
type Mainframe struct {
	tr        transport.Transport
	logger    logger.Logger
	sessionID string
	maxErrors int
	modules   *xsync.MapOf[int, Module]
}

// NewMainframe creates a Mainframe talking over tr. Nothing is sent to the
// instrument until a command is called.
func NewMainframe(tr transport.Transport, opts ...Option) (*Mainframe, error) {
	if tr == nil {
		return nil, errors.New("analyzer: transport is nil")
	}

	m := &Mainframe{
		tr:        tr,
		logger:    logger.GetLogger(),
		sessionID: uuid.New().String(),
		maxErrors: 100,
		modules:   xsync.NewMapOf[int, Module](),
	}

	for _, opt := range opts {
		if err := opt.apply(m); err != nil {
			return nil, err
		}
	}
	m.logger = m.logger.With("session", m.sessionID)

	return m, nil
}

// SessionID identifies this driver instance in the logs.
func (m *Mainframe) SessionID() string { return m.sessionID }

// Transport returns the transport shared by the mainframe and its modules.
func (m *Mainframe) Transport() transport.Transport { return m.tr }

// AddSMU registers the B1517A SMU installed in slot.
func (m *Mainframe) AddSMU(slot int) (*SMU, error) {
	smu, err := NewSMU(m.tr, slot, m.logger)
	if err != nil {
		return nil, err
	}

	if _, loaded := m.modules.LoadOrStore(slot, smu); loaded {
		return nil, fmt.Errorf("analyzer: slot %d: %w", slot, ErrSlotOccupied)
	}
	m.logger.Info("module added", "slot", slot, "model", smu.Model())

	return smu, nil
}

// Module returns the module registered in slot.
func (m *Mainframe) Module(slot int) (Module, bool) {
	return m.modules.Load(slot)
}

// SMU returns the SMU registered in slot.
func (m *Mainframe) SMU(slot int) (*SMU, bool) {
	mod, ok := m.modules.Load(slot)
	if !ok {
		return nil, false
	}
	smu, ok := mod.(*SMU)

	return smu, ok
}

// Modules returns the registered modules ordered by slot.
func (m *Mainframe) Modules() []Module {
	mods := make([]Module, 0, m.modules.Size())
	m.modules.Range(func(_ int, mod Module) bool {
		mods = append(mods, mod)
		return true
	})
	slices.SortFunc(mods, func(a, b Module) int { return a.Slot() - b.Slot() })

	return mods
}

// Initialize selects the data output format the decoders of this module
// expect (FMT 1,0).
func (m *Mainframe) Initialize() error {
	return m.write(b1500.SetDataFormat())
}

// Reset resets the instrument to its initial settings (*RST). The cached
// measurement mode of every SMU returns to b1500.ModeSpot.
func (m *Mainframe) Reset() error {
	if err := m.write(b1500.Reset()); err != nil {
		return err
	}

	m.modules.Range(func(_ int, mod Module) bool {
		if smu, ok := mod.(*SMU); ok {
			smu.mode.Store(int64(b1500.ModeSpot))
		}
		return true
	})

	return nil
}

// Identify returns the identification string of the instrument (*IDN?).
func (m *Mainframe) Identify() (string, error) {
	return m.ask(b1500.Identify())
}

// EnableChannels enables the output of the given channels (CN), or of all
// channels when none is given.
func (m *Mainframe) EnableChannels(channels ...b1500.ChNr) error {
	cmd, err := b1500.EnableChannels(channels...)
	if err != nil {
		return err
	}

	return m.write(cmd)
}

// DisableChannels disables the output of the given channels (CL), or of all
// channels when none is given.
func (m *Mainframe) DisableChannels(channels ...b1500.ChNr) error {
	cmd, err := b1500.DisableChannels(channels...)
	if err != nil {
		return err
	}

	return m.write(cmd)
}

// SetAutoZero enables or disables the ADC zero function (AZ).
func (m *Mainframe) SetAutoZero(enable bool) error {
	return m.write(b1500.SetAutoZero(enable))
}

// Errors drains the instrument error queue (ERRX?) and returns its entries
// as one aggregated error of *InstrumentError values, or nil when the queue
// is empty.
func (m *Mainframe) Errors() error {
	var mulErr *multierror.Error

	for range m.maxErrors {
		resp, err := m.ask(b1500.ErrorQuery())
		if err != nil {
			return multierror.Append(mulErr, err).ErrorOrNil()
		}

		code, msg, err := b1500.ParseError(resp)
		if err != nil {
			return multierror.Append(mulErr, err).ErrorOrNil()
		}
		if code == 0 {
			return mulErr.ErrorOrNil()
		}

		m.logger.Warn("instrument error", "code", code, "message", msg)
		mulErr = multierror.Append(mulErr, &InstrumentError{Code: code, Message: msg})
	}

	return multierror.Append(mulErr,
		fmt.Errorf("analyzer: error queue not empty after %d queries", m.maxErrors)).ErrorOrNil()
}

// Close closes the transport.
func (m *Mainframe) Close() error {
	m.logger.Info("close mainframe")
	return m.tr.Close()
}

func (m *Mainframe) write(cmd b1500.Command) error {
	m.logger.Debug("write", "cmd", cmd.String())
	return m.tr.Write(cmd.String())
}

func (m *Mainframe) ask(cmd b1500.Command) (string, error) {
	m.logger.Debug("ask", "cmd", cmd.String())
	return m.tr.Ask(cmd.String())
}
