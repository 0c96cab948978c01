// Package prompt turns UI state into Gemini requests: a natural-language
// prompt plus the structured-output schema the model must fill.
package prompt

import (
	"fmt"
	"strings"

	"poker-genius/server/deck"
	"poker-genius/server/table"
)

// Request is one fully built gateway call: prompt text plus the schema
// of the JSON object the model has to return. Schema field types are
// restricted to STRING, NUMBER and ARRAY-of-STRING.
type Request struct {
	Prompt     string
	SchemaName string
	Schema     map[string]any
}

func str() map[string]any { return map[string]any{"type": "STRING"} }
func num() map[string]any { return map[string]any{"type": "NUMBER"} }
func strList() map[string]any {
	return map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}}
}

func objectSchema(props map[string]any, required []string) map[string]any {
	return map[string]any{
		"type":       "OBJECT",
		"properties": props,
		"required":   required,
	}
}

func cardList(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Long()
	}
	return strings.Join(parts, ", ")
}

// positionDetail resolves the human wording for a position. Heads-up
// has its own semantics: the dealer posts the small blind and acts
// first pre-flop but last post-flop, the big blind the opposite.
func positionDetail(pos table.Position, headsUp bool) string {
	if headsUp {
		if pos == table.Dealer {
			return "Dealer / Ciega Pequeña (Habla primero pre-flop, último post-flop)."
		}
		return "Ciega Grande (Habla último pre-flop, primero post-flop)."
	}
	switch pos {
	case table.Dealer:
		return "Button/Dealer"
	case table.SmallBlind:
		return "Ciega Pequeña"
	case table.BigBlind:
		return "Ciega Grande"
	case table.Middle:
		return "Posición Media"
	case table.Late:
		return "Posición Tardía (Cutoff)"
	default:
		// Early, and the unset position defaults to early.
		return "Posición Temprana (UTG)"
	}
}

// BuildHandAnalysis builds the calculator/trainer request. The caller
// guarantees the hand holds exactly two cards before invoking.
func BuildHandAnalysis(hand, board []deck.Card, ctx table.Context) Request {
	boardString := "Pre-flop (sin cartas)"
	if len(board) > 0 {
		boardString = cardList(board)
	}
	headsUpTag := "(Mesa Llena)"
	if ctx.HeadsUp() {
		headsUpTag = "(Heads-Up)"
	}

	var b strings.Builder
	b.WriteString("Eres un mentor experto en Poker Texas Hold'em enfocado en teoría GTO (Game Theory Optimal).\n\n")
	b.WriteString("CONTEXTO DE LA MANO:\n")
	fmt.Fprintf(&b, "- Jugadores: %d %s\n", ctx.PlayerCount, headsUpTag)
	fmt.Fprintf(&b, "- Mi Stack: %d BB (Ciegas Grandes)\n", ctx.StackSize)
	fmt.Fprintf(&b, "- Mi Mano: %s\n", cardList(hand))
	fmt.Fprintf(&b, "- Mesa (Board): %s\n", boardString)
	fmt.Fprintf(&b, "- Mi Posición: %s\n", positionDetail(ctx.Position, ctx.HeadsUp()))
	fmt.Fprintf(&b, "- Perfil del Rival: %s\n\n", ctx.OpponentProfile)
	b.WriteString("INSTRUCCIONES ESTRATÉGICAS:\n")
	b.WriteString("1. Ajusta la agresividad según el stack. Con < 15 BB busca All-in o Fold. Con > 100 BB juega más post-flop.\n")
	b.WriteString("2. Sugiere una ACCIÓN específica (Check, Bet, Raise, Fold, All-in).\n")
	b.WriteString("3. Si sugieres apostar/subir, indica un TAMAÑO (ej. 33% pot, 2.5 BB, 75% pot).\n")
	b.WriteString("4. Explica brevemente la lógica matemática o de rango detrás de la decisión.\n\n")
	b.WriteString("RESPONDE EN ESPAÑOL (JSON):\n")
	b.WriteString("- probability: (0.0 a 1.0 de victoria)\n")
	b.WriteString("- advice: 'CONTINUE', 'FOLD', o 'CAUTION'\n")
	b.WriteString("- suggestedAction: Acción recomendada (ej: \"Subir / 3-Bet\", \"Pasar / Llamar\")\n")
	b.WriteString("- betSize: Tamaño recomendado (ej: \"3.5 BB\" o \"1/2 del Bote\")\n")
	b.WriteString("- reasoning: Explicación didáctica.\n")
	b.WriteString("- expectedHand: Mejor jugada actual o proyecto.\n")

	return Request{
		Prompt:     b.String(),
		SchemaName: "hand_analysis",
		Schema: objectSchema(map[string]any{
			"probability":     num(),
			"advice":          str(),
			"suggestedAction": str(),
			"betSize":         str(),
			"reasoning":       str(),
			"expectedHand":    str(),
		}, []string{"probability", "advice", "suggestedAction", "betSize", "reasoning", "expectedHand"}),
	}
}

// BuildHandHistory builds the importer request. Callers must skip the
// gateway call entirely when rawText is blank after trimming.
func BuildHandHistory(rawText string) Request {
	var b strings.Builder
	b.WriteString("Eres un analista de datos de poker de élite. Analiza el siguiente historial de manos (PokerStars/GG format) y extrae conclusiones estadísticas profundas sobre el \"Hero\" (el jugador principal).\n\n")
	b.WriteString("TEXTO DEL HISTORIAL:\n")
	b.WriteString(rawText)
	b.WriteString("\n\nTAREAS:\n")
	b.WriteString("1. Identifica el estilo del jugador (ej: Tight-Aggressive, Loose-Passive).\n")
	b.WriteString("2. Estima su agresividad y tendencia a entrar en botes.\n")
	b.WriteString("3. Encuentra \"LEAKS\" (errores recurrentes, ej: over-folding en river, over-calling preflop).\n")
	b.WriteString("4. Identifica fortalezas.\n")
	b.WriteString("5. Escribe un reporte educativo exhaustivo.\n\n")
	b.WriteString("RESPONDE EN ESPAÑOL (JSON):\n")
	b.WriteString("- playerStyle: Nombre del estilo.\n")
	b.WriteString("- vpipRating: Comentario sobre su frecuencia de juego (Baja/Media/Alta).\n")
	b.WriteString("- aggressionFactor: Escala del 1 al 10.\n")
	b.WriteString("- mainLeaks: Lista de strings con los errores encontrados.\n")
	b.WriteString("- strengths: Lista de strings con los puntos fuertes.\n")
	b.WriteString("- detailedReport: Texto largo en Markdown con análisis detallado.\n")
	b.WriteString("- suggestedDrills: Lista de ejercicios para mejorar.\n")

	return Request{
		Prompt:     b.String(),
		SchemaName: "hand_history_report",
		Schema: objectSchema(map[string]any{
			"playerStyle":      str(),
			"vpipRating":       str(),
			"aggressionFactor": num(),
			"mainLeaks":        strList(),
			"strengths":        strList(),
			"detailedReport":   str(),
			"suggestedDrills":  strList(),
		}, []string{"playerStyle", "vpipRating", "aggressionFactor", "mainLeaks", "strengths", "detailedReport", "suggestedDrills"}),
	}
}
