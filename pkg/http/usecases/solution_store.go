package usecases

import (
	"errors"
	"strconv"
	"sync"

	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

var ErrSolutionNotFound = errors.New("solution not found")

// SolutionStore. in-memory solutions, the oldest one is evicted once capacity is reached.
type SolutionStore struct {
	mu        sync.RWMutex
	seq       uint64
	capacity  int
	order     []string
	solutions map[string]*heuristic.Solution
}

func NewSolutionStore(capacity int) *SolutionStore {
	if capacity < 1 {
		capacity = 1
	}
	return &SolutionStore{
		capacity:  capacity,
		order:     make([]string, 0, capacity),
		solutions: make(map[string]*heuristic.Solution, capacity),
	}
}

func (s *SolutionStore) Put(sol *heuristic.Solution) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := strconv.FormatUint(s.seq, 10)

	if len(s.order) == s.capacity {
		delete(s.solutions, s.order[0])
		s.order = s.order[1:]
	}
	s.order = append(s.order, id)
	s.solutions[id] = sol
	return id
}

func (s *SolutionStore) Get(id string) (*heuristic.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sol, ok := s.solutions[id]
	if !ok {
		return nil, util.WrapErrorf(ErrSolutionNotFound, util.ErrNotFound, "solution %s", id)
	}
	return sol, nil
}

func (s *SolutionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.solutions)
}
