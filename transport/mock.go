package transport

import (
	"github.com/stretchr/testify/mock"
)

// MockTransport is a testify mock implementing Transport.
type MockTransport struct {
	mock.Mock
}

var _ Transport = (*MockTransport)(nil)

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (m *MockTransport) Write(cmd string) error {
	args := m.Called(cmd)
	return args.Error(0)
}

func (m *MockTransport) Ask(cmd string) (string, error) {
	args := m.Called(cmd)
	return args.String(0), args.Error(1)
}

func (m *MockTransport) Close() error {
	args := m.Called()
	return args.Error(0)
}
