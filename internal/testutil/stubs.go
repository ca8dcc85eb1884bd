package testutil

import (
	"sync"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
)

// SheetStub generador de fichas que devuelve un PDF falso y recuerda la última ficha.
type SheetStub struct {
	Last *dto.VendorDetailResponse
	Err  error
}

func (s *SheetStub) VendorSheet(detail *dto.VendorDetailResponse) ([]byte, error) {
	s.Last = detail
	if s.Err != nil {
		return nil, s.Err
	}
	return []byte("%PDF-1.3 stub"), nil
}

// MetricsRecorder cuenta las llamadas a los contadores de negocio.
type MetricsRecorder struct {
	mu       sync.Mutex
	Toggles  map[string]int
	Filtered []int
}

func (m *MetricsRecorder) SelectionToggled(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Toggles == nil {
		m.Toggles = map[string]int{}
	}
	m.Toggles[level]++
}

func (m *MetricsRecorder) VendorsFiltered(matched int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Filtered = append(m.Filtered, matched)
}
