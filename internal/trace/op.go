package trace

import "context"

// Func is the shape shared by every instrumentable operation: positional
// arguments in, one value out. Blocking behavior and cancellation are
// whatever the body does with ctx.
type Func func(ctx context.Context, args ...any) (any, error)

// Operation pairs a Func with its qualified name. The name is the
// instrumentation key prefix and must be stable across all instances of
// the owning object, not per-instance.
type Operation struct {
	name string
	call Func
}

// NewOperation binds fn to the given qualified name.
func NewOperation(name string, fn Func) Operation {
	return Operation{name: name, call: fn}
}

// Name returns the operation's qualified name.
func (o Operation) Name() string {
	return o.name
}

// Call invokes the operation.
func (o Operation) Call(ctx context.Context, args ...any) (any, error) {
	return o.call(ctx, args...)
}

// Middleware takes an operation and returns a new operation with the
// same signature and name.
type Middleware func(Operation) Operation

// Chain applies middleware to op with the first listed outermost, so
//
//	Chain(op, a, b)
//
// yields a(b(op)): a runs first on the way in.
func Chain(op Operation, middleware ...Middleware) Operation {
	for i := len(middleware) - 1; i >= 0; i-- {
		op = middleware[i](op)
	}
	return op
}
