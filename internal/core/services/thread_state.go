package services

import "facebook-data-reader/internal/domain"

// groupThreshold - переписка с большим числом участников считается группой.
const groupThreshold = 2

// ThreadState хранит переписки, уже встреченные за одну загрузку.
// Создается на каждый вызов загрузки и не разделяется между ними.
type ThreadState struct {
	kinds map[string]domain.ThreadKind
}

// NewThreadState создает пустое состояние.
func NewThreadState() *ThreadState {
	return &ThreadState{kinds: make(map[string]domain.ThreadKind)}
}

// Observe отмечает переписку и возвращает ее тип.
// Тип определяется по числу участников в первом встреченном шарде и дальше не меняется.
// first == true, если переписка встречена впервые.
func (s *ThreadState) Observe(threadID string, participants int) (kind domain.ThreadKind, first bool) {
	if known, ok := s.kinds[threadID]; ok {
		return known, false
	}
	kind = domain.ThreadDialog
	if participants > groupThreshold {
		kind = domain.ThreadGroup
	}
	s.kinds[threadID] = kind
	return kind, true
}

// Len возвращает число встреченных переписок.
func (s *ThreadState) Len() int {
	return len(s.kinds)
}
