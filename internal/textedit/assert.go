//go:build !debugassert

package textedit

import "github.com/rs/zerolog/log"

// invariant reports a broken internal invariant. Release builds log it;
// build with -tags debugassert to panic instead.
func invariant(ok bool, what string) {
	if !ok {
		log.Error().Str("invariant", what).Msg("textedit: invariant violated")
	}
}
