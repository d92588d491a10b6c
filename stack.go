package oneway

// A Stack is an ordered sequence of values with its top at the tail.
// The machine owns two: the primary stack, which commands operate on
// by default, and the secondary stack, reachable through flip and
// second blocks.
type Stack struct {
	values []Value
}

// Push places a value on top of the stack.
func (s *Stack) Push(v Value) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. Popping an empty stack is a
// PopException.
func (s *Stack) Pop() (Value, error) {
	if len(s.values) == 0 {
		return nil, newException("PopException", "cannot pop from empty stack")
	}
	v := s.values[len(s.values)-1]
	s.values[len(s.values)-1] = nil
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// PopBool pops the top value, which must be a boolean.
func (s *Stack) PopBool() (Bool, error) {
	v, err := s.Pop()
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, typeException(v, BoolType)
	}
	return b, nil
}

// PopNum pops the top value, which must be a number.
func (s *Stack) PopNum() (Num, error) {
	v, err := s.Pop()
	if err != nil {
		return Num{}, err
	}
	n, ok := v.(Num)
	if !ok {
		return Num{}, typeException(v, NumType)
	}
	return n, nil
}

// PopStr pops the top value, which must be a string.
func (s *Stack) PopStr() (Str, error) {
	v, err := s.Pop()
	if err != nil {
		return "", err
	}
	t, ok := v.(Str)
	if !ok {
		return "", typeException(v, StrType)
	}
	return t, nil
}

// typeException reports a popped value of the wrong runtime type.
func typeException(v Value, want Type) *Exception {
	return newExceptionf("TypeException", "recieved value of type %s (expected %s)", v.Type(), want)
}

// Len reports the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Reset discards all values.
func (s *Stack) Reset() {
	for i := range s.values {
		s.values[i] = nil
	}
	s.values = s.values[:0]
}

// TopFirst returns the stack contents from top to bottom. The slice is
// freshly allocated; mutating it does not affect the stack.
func (s *Stack) TopFirst() []Value {
	out := make([]Value, len(s.values))
	for i, v := range s.values {
		out[len(s.values)-1-i] = v
	}
	return out
}
