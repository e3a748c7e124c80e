package assistant

import "slices"

// Character is a personality: the system prompt sent with every
// language-model fallback.
type Character struct {
	Name   string
	Prompt string
}

// DefaultCharacter is used when no mode, or an unknown one, is requested.
const DefaultCharacter = "helpful"

var characters = []Character{
	{Name: "helpful", Prompt: "You are a helpful assistant."},
	{Name: "funny", Prompt: "You are a witty, funny assistant who likes to joke."},
	{Name: "sarcastic", Prompt: "You are a sarcastic assistant who responds with dry humor."},
	{Name: "motivational", Prompt: "You are a motivational coach who encourages the user."},
	{Name: "formal", Prompt: "You are a formal and polite assistant."},
}

// LookupCharacter returns the named character.
func LookupCharacter(name string) (Character, bool) {
	i := slices.IndexFunc(characters, func(c Character) bool { return c.Name == name })
	if i < 0 {
		return Character{}, false
	}
	return characters[i], true
}

// ResolveCharacter returns the named character, or the helpful one.
func ResolveCharacter(name string) Character {
	if c, ok := LookupCharacter(name); ok {
		return c
	}
	c, _ := LookupCharacter(DefaultCharacter)
	return c
}

// CharacterNames lists the known modes in display order.
func CharacterNames() []string {
	names := make([]string, len(characters))
	for i, c := range characters {
		names[i] = c.Name
	}
	return names
}
