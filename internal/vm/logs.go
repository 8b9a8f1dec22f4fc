package vm

// registerLogs wires LOG0..LOG4 via a single factory, makeLog(n), keyed
// on the topic count the same way makePush/makeDup/makeSwap are keyed on
// their operand count.
func registerLogs() {
	for n := 0; n <= 4; n++ {
		register(OpCode(int(LOG0)+n), makeLog(n))
	}
}

// makeLog returns a handler for LOGn: pop (offset, size, topic_1..topic_n),
// read the data range from memory, and append a LogEntry to the frame.
func makeLog(n int) Handler {
	return func(f *Frame) Delta {
		if f.Ctx.IsStatic {
			return fail(ErrStaticViolation)
		}
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		size, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		topics := make([]Word, n)
		for i := 0; i < n; i++ {
			var t Word
			t, s, err = s.Pop()
			if err != nil {
				return fail(err)
			}
			topics[i] = t
		}
		data, gas, err := f.Memory.Read(offset.Uint64(), size.Uint64())
		if err != nil {
			return fail(err)
		}
		entry := &LogEntry{Address: f.Ctx.Address, Data: data, Topics: topics}
		return Delta{
			Stack:    s,
			GasCost:  gas + LogDataGas(size.Uint64()),
			Log:      entry,
			Continue: true,
		}
	}
}
