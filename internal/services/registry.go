// Package services provides the supporting services for statshell commands:
// configuration loading, external process execution, dataset file I/O, and
// help rendering. Services register at startup and are looked up by name.
package services

import (
	"fmt"

	"statshell/pkg/stattypes"
)

// Registry holds the registered services for one process.
type Registry struct {
	services map[string]stattypes.Service
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{services: make(map[string]stattypes.Service)}
}

// RegisterService adds a service and initializes it.
func (r *Registry) RegisterService(s stattypes.Service) error {
	if _, exists := r.services[s.Name()]; exists {
		return fmt.Errorf("service %s already registered", s.Name())
	}
	if err := s.Initialize(); err != nil {
		return fmt.Errorf("initializing service %s: %w", s.Name(), err)
	}
	r.services[s.Name()] = s
	return nil
}

// GetService looks a service up by name.
func (r *Registry) GetService(name string) (stattypes.Service, error) {
	s, ok := r.services[name]
	if !ok {
		return nil, fmt.Errorf("service %s not found", name)
	}
	return s, nil
}

var globalRegistry = NewRegistry()

// GetGlobalRegistry returns the process-wide service registry.
func GetGlobalRegistry() *Registry {
	return globalRegistry
}

// GetShellService returns the registered shell service.
func GetShellService() (*ShellService, error) {
	s, err := globalRegistry.GetService("shell")
	if err != nil {
		return nil, err
	}
	return s.(*ShellService), nil
}

// GetDataService returns the registered data service.
func GetDataService() (*DataService, error) {
	s, err := globalRegistry.GetService("data")
	if err != nil {
		return nil, err
	}
	return s.(*DataService), nil
}

// GetHelpService returns the registered help service.
func GetHelpService() (*HelpService, error) {
	s, err := globalRegistry.GetService("help")
	if err != nil {
		return nil, err
	}
	return s.(*HelpService), nil
}

// GetConfigurationService returns the registered configuration service.
func GetConfigurationService() (*ConfigurationService, error) {
	s, err := globalRegistry.GetService("configuration")
	if err != nil {
		return nil, err
	}
	return s.(*ConfigurationService), nil
}
