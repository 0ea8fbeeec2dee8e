// Package prompts holds the named, versioned prompt texts used by the
// pipeline, so every record can carry an audit trail of what produced it.
package prompts

import "fmt"

// Definition is one immutable prompt revision.
type Definition struct {
	Name    string
	Version int
	Text    string
}

const (
	// RateHappiness scores a CSV batch of videos.
	RateHappiness = "rate_video_happiness"
	// ImproveDescription rewrites a CSV batch of descriptions.
	ImproveDescription = "make_description_meaningful"
)

var definitions = []Definition{
	{
		Name:    RateHappiness,
		Version: 1,
		Text: `Rate the happiness of each video in the list below; every row has an id, a title and a description.
Use a scale from 1 to 5 where 1 is the least happy and 5 is the happiest.
Answer in JSON only (no extra text): a list of objects with "id" and "happiness".`,
	},
	{
		Name:    RateHappiness,
		Version: 2,
		Text: `Rate the happiness of each video in the list below; every row has an id, a title and a description.
Use a scale from 1 to 5 where 1 is the least happy and 5 is the happiest.
Answer in CSV only (no extra text) with exactly three columns: id, happiness, reasoning.
Keep the reasoning to one short sentence and wrap it in quotes.`,
	},
	{
		Name:    ImproveDescription,
		Version: 1,
		Text: `The next block is a CSV of videos with columns video_id and description.
Determine the language of each description. For the English ones, strip every
sentence that does not describe the video itself: subscription pleas, channel
promotion, social links (a sentence containing a link rarely describes the
video). Leave other languages intact, emoticons included.
Answer in CSV only (no extra text) with three columns: id, language and
description_improved, with description_improved wrapped in quotes.`,
	},
}

// Get returns the prompt text for a name and version.
func Get(name string, version int) (string, error) {
	for _, def := range definitions {
		if def.Name == name && def.Version == version {
			return def.Text, nil
		}
	}
	return "", fmt.Errorf("prompt %s v%d is not defined", name, version)
}
