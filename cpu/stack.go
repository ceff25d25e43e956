package cpu

const (
	STACK_LIMIT = 4096 // Default maximum call depth
)

// Stack is the call stack of return addresses.
type Stack struct {
	Data  []uint64
	Limit int // Maximum depth; zero selects STACK_LIMIT.
}

func (s *Stack) Push(value uint64) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value uint64, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	limit := s.Limit
	if limit <= 0 {
		limit = STACK_LIMIT
	}
	return len(s.Data) >= limit
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value uint64, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
