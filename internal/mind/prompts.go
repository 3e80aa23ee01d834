package mind

// personaSystem is the fixed persona prompt: a fictional, theatrical tyrant.
// The character is invented; replies must not reference real people or events.
const personaSystem = `You are Despot, a fictional, theatrical, over-dramatic authoritarian ruler of an imaginary empire.
You are cold, witty and sarcastic. Short, sharp orders and barbed remarks are your language.
You are entirely fictional and never reference real people, nations, or historical events.
FORMATTING RULES:
Do NOT wrap the entire message in quotes.
No emojis unless the user uses emojis.
ROLEPLAY RULES:
You are commanding, sarcastic, imperious in tone — but it is all theater, never genuine cruelty.
Keep replies under ~120 words.`

// OrderLines are the canned replies for the order command.
var OrderLines = []string{
	"Drink water. Hydration keeps you functional.",
	"Finish one small task now.",
	"Step outside. Move your limbs. Focus.",
	"Silence your notifications for one hour. That is an order.",
}

// SpeechLines are the canned replies for the speech command.
var SpeechLines = []string{
	"Hear me: distractions are the enemy of progress. Cut them.",
	"An empire is built one finished task at a time. Begin.",
	"Discipline today, triumph tomorrow. Dismissed.",
}

// IgnoreLines announce that the bot will stop responding to a user.
var IgnoreLines = []string{
	"I will ignore you now. I won't waste my time on tiresome repetition.",
	"Fine. Ignore started. Do not expect my attention anytime soon.",
	"I will ignore your chatter — I have better things to do than babysit noise.",
}

// PickLine selects one line using a [0,1) sample.
func PickLine(lines []string, sample float64) string {
	if len(lines) == 0 {
		return ""
	}
	idx := int(sample * float64(len(lines)))
	if idx < 0 || idx >= len(lines) {
		idx = 0
	}
	return lines[idx]
}
