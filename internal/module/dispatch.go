package module

import "errors"

// ErrHookNotFound distinguishes "module opted out of this stage" from a
// callback that ran and failed. Callers that only need "did it run" should
// check HasHook first.
var ErrHookNotFound = errors.New("module: hook not implemented")

// HasHook reports whether the module implements the named hook. Pure query,
// nothing is invoked.
func HasHook(desc *Descriptor, hook string) bool {
	if desc == nil {
		return false
	}
	_, ok := desc.Hooks[hook]
	return ok
}

// Invoke calls the module's callback for the named hook. Returns
// ErrHookNotFound when the module does not implement it, otherwise whatever
// the callback returned.
func Invoke(ctx *Context, desc *Descriptor, hook string) error {
	fn, ok := desc.Hooks[hook]
	if !ok || fn == nil {
		return ErrHookNotFound
	}
	return fn(ctx)
}

// RunHookForAll makes one full pass over the frozen module list, invoking
// the named hook on every module that implements it. A missing hook or a
// failing callback never halts the pass; modules report their own failures
// through the dialog layer, the dispatcher only logs them. The single
// exception is ErrAborted: the administrator confirmed they want to quit,
// and that is propagated to the caller immediately.
func (r *Registry) RunHookForAll(ctx *Context, hook string) error {
	for _, desc := range r.Freeze() {
		err := Invoke(ctx, desc, hook)
		switch {
		case err == nil:
		case errors.Is(err, ErrHookNotFound):
		case errors.Is(err, ErrAborted):
			return ErrAborted
		default:
			if ctx != nil && ctx.Logger != nil {
				ctx.Logger.Printf("module %s: hook %s failed: %v", desc.Name, hook, err)
			}
		}
	}
	return nil
}
