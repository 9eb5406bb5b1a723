package categorytable

import (
	"fmt"

	"fjacquet/statement-budget/internal/models"

	"gopkg.in/yaml.v3"
)

type entryBody struct {
	Synonyms []string `yaml:"synonyms"`
	Keywords []string `yaml:"keywords"`
}

// Parse decodes a category table document. Two shapes are accepted:
//
//	dining out:                     - id: dining out
//	  synonyms: [restaurants]         synonyms: [restaurants]
//	  keywords: [cafe, sushi]         keywords: [cafe, sushi]
//
// The mapping form is the canonical one. Document order is preserved in
// both, since it decides match priority.
func Parse(data []byte) ([]models.CategoryConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing category table: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("category table document is empty")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		return parseMapping(root)
	case yaml.SequenceNode:
		var entries []models.CategoryConfig
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("error decoding category list: %w", err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("category table must be a mapping or a list, got %s at line %d",
			kindName(root.Kind), root.Line)
	}
}

func parseMapping(root *yaml.Node) ([]models.CategoryConfig, error) {
	entries := make([]models.CategoryConfig, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var body entryBody
		if value.Kind != yaml.ScalarNode || value.Tag != "!!null" {
			if err := value.Decode(&body); err != nil {
				return nil, fmt.Errorf("error decoding category %q (line %d): %w", key.Value, key.Line, err)
			}
		}

		entries = append(entries, models.CategoryConfig{
			ID:       key.Value,
			Synonyms: body.Synonyms,
			Keywords: body.Keywords,
		})
	}
	return entries, nil
}

// Marshal renders entries in the canonical mapping form, keeping order.
func Marshal(entries []models.CategoryConfig) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		var value yaml.Node
		body := entryBody{Synonyms: e.Synonyms, Keywords: e.Keywords}
		if body.Keywords == nil {
			body.Keywords = []string{}
		}
		if err := value.Encode(body); err != nil {
			return nil, fmt.Errorf("error encoding category %q: %w", e.ID, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.ID},
			&value)
	}
	return yaml.Marshal(root)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}
