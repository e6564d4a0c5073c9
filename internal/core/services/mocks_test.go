package services

import "github.com/stretchr/testify/mock"

// mockRepairer - мок-реализация ports.TextRepairer для тестирования
type mockRepairer struct {
	mock.Mock
}

// Repair реализует интерфейс ports.TextRepairer
func (m *mockRepairer) Repair(text string) string {
	args := m.Called(text)
	return args.String(0)
}

// identity не меняет текст
type identity struct{}

func (identity) Repair(text string) string { return text }

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }
