package hint

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a Grandmaster chess coach. Analyze the position and suggest the best next move. Explain the strategic reasoning briefly.

Rules:
- suggestedMove must be a legal move for the side to move, written in SAN.
- Keep reasoning to two or three sentences aimed at a club player.
- evaluation is a signed pawn score followed by a short verdict.`

func buildUserMessage(fen string, history []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current FEN: %s\n", fen)
	fmt.Fprintf(&b, "Move History: %s\n", strings.Join(history, ", "))
	b.WriteString("\nSuggest the best next move.")
	return b.String()
}
