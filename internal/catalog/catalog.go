package catalog

import "fmt"

// Catalog is the read-only topic -> module -> question tree with lookup
// indices. It is built once at startup and never mutated.
type Catalog struct {
	topics   []*Topic
	byTopic  map[string]*Topic
	byModule map[string]*Module
}

// New validates topics and builds the lookup indices.
func New(topics []*Topic) (*Catalog, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	c := &Catalog{
		topics:   topics,
		byTopic:  make(map[string]*Topic, len(topics)),
		byModule: make(map[string]*Module),
	}
	for _, t := range topics {
		c.byTopic[t.ID] = t
		for _, m := range t.Modules {
			m.TopicID = t.ID
			c.byModule[m.ID] = m
		}
	}
	return c, nil
}

// Topics returns all topics in manifest order.
func (c *Catalog) Topics() []*Topic {
	return c.topics
}

// Topic returns the topic with the given ID.
func (c *Catalog) Topic(id string) (*Topic, bool) {
	t, ok := c.byTopic[id]
	return t, ok
}

// Module returns the module with the given ID.
func (c *Catalog) Module(id string) (*Module, bool) {
	m, ok := c.byModule[id]
	return m, ok
}

// DefaultTopic returns the first topic, or nil for an empty catalog.
func (c *Catalog) DefaultTopic() *Topic {
	if len(c.topics) == 0 {
		return nil
	}
	return c.topics[0]
}

// Questions merges the question lists of the given modules in the order
// requested. Unknown module IDs are an error.
func (c *Catalog) Questions(moduleIDs ...string) ([]Question, error) {
	var out []Question
	for _, id := range moduleIDs {
		m, ok := c.byModule[id]
		if !ok {
			return nil, fmt.Errorf("unknown module %q", id)
		}
		out = append(out, m.Questions...)
	}
	return out, nil
}

// QuestionSets returns each module's question list, for topic-level
// aggregation.
func (t *Topic) QuestionSets() [][]Question {
	sets := make([][]Question, 0, len(t.Modules))
	for _, m := range t.Modules {
		sets = append(sets, m.Questions)
	}
	return sets
}

// QuestionCount returns the number of questions across all modules.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, m := range c.byModule {
		n += len(m.Questions)
	}
	return n
}
