// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"fmt"
	"os"
	"strings"
)

// bannerWidth is the width of the console rule around banner titles.
const bannerWidth = 40

// Banner marks the start of a pipeline phase. It emits a structured log event
// and, for operators watching the console, a visual rule on stdout matching
// the historical script output.
func Banner(title string) {
	Info().Str("phase", title).Msg("Phase started")

	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(os.Stdout, "\n%s\n  %s\n%s\n\n", rule, title, rule)
}
