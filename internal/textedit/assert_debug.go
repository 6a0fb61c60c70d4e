//go:build debugassert

package textedit

func invariant(ok bool, what string) {
	if !ok {
		panic("textedit: invariant violated: " + what)
	}
}
