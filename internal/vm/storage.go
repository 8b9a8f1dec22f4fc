package vm

// registerStorage wires SLOAD/SSTORE. SSTORE is rejected with
// ErrStaticViolation inside a STATICCALL, per spec.md's static-context
// rule, surfaced as a fatal frame error rather than silently ignored.
func registerStorage() {
	register(SLOAD, func(f *Frame) Delta {
		key, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		v := f.Ctx.State.Account(f.Ctx.Address).GetStorage(key)
		s, err = s.Push(v)
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	})

	register(SSTORE, func(f *Frame) Delta {
		if f.Ctx.IsStatic {
			return fail(ErrStaticViolation)
		}
		key, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		value, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		f.Ctx.State.Account(f.Ctx.Address).SetStorage(key, value)
		return step(s, 0)
	})
}
