package detector

import (
	"sync"

	"github.com/xhad/copyscan/internal/models"
)

// Monitor provides hooks to observe a check while it runs.
// Calls for one Check are never concurrent.
type Monitor interface {
	Start(reportID string, input models.NormalizedInput)
	AfterQuery(query models.Query)
	AfterRetrieval(candidates []models.Candidate)
	CandidateScored(result models.SimilarityResult)
	Diagnostic(d models.Diagnostic)
	Finish(report *models.Report)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ models.NormalizedInput)  {}
func (n *noopMonitor) AfterQuery(_ models.Query)                 {}
func (n *noopMonitor) AfterRetrieval(_ []models.Candidate)       {}
func (n *noopMonitor) CandidateScored(_ models.SimilarityResult) {}
func (n *noopMonitor) Diagnostic(_ models.Diagnostic)            {}
func (n *noopMonitor) Finish(_ *models.Report)                   {}

// syncMonitor serializes calls from the worker pool.
type syncMonitor struct {
	mu    sync.Mutex
	inner Monitor
}

func (s *syncMonitor) Start(reportID string, input models.NormalizedInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Start(reportID, input)
}

func (s *syncMonitor) AfterQuery(query models.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.AfterQuery(query)
}

func (s *syncMonitor) AfterRetrieval(candidates []models.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.AfterRetrieval(candidates)
}

func (s *syncMonitor) CandidateScored(result models.SimilarityResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.CandidateScored(result)
}

func (s *syncMonitor) Diagnostic(d models.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Diagnostic(d)
}

func (s *syncMonitor) Finish(report *models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Finish(report)
}
