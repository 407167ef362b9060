package wiktionary

// apiResponse is the REST definition payload: entries keyed by language code.
// Only English entries are read.
type apiResponse struct {
	En []apiEntry `json:"en"`
}

type apiEntry struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Language     string          `json:"language"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
}
