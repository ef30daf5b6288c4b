package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/sectrean/ioc-kit"
)

// Installer is a mock [ioc.Installer].
type Installer struct {
	mock.Mock
}

var _ ioc.Installer = (*Installer)(nil)

func (m *Installer) Install(c *ioc.Container) error {
	args := m.Called(c)
	return args.Error(0)
}
