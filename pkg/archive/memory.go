package archive

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/offwiki/pkg/errors"
)

// Compile-time interface verification.
var _ Archive = (*Memory)(nil)

// Memory is an in-process archive. Search matches case-insensitive
// substrings of titles and paths and ranks results in insertion order.
type Memory struct {
	mu       sync.RWMutex
	title    string
	uuid     string
	mainPath string
	created  time.Time
	order    []string
	articles map[string]memoryArticle
}

type memoryArticle struct {
	title   string
	content []byte
}

// NewMemory returns an empty archive with the given title.
func NewMemory(title string) *Memory {
	return &Memory{
		title:    title,
		uuid:     uuid.NewString(),
		created:  time.Now().UTC(),
		articles: make(map[string]memoryArticle),
	}
}

// Add stores an article, replacing any article at the same path.
func (m *Memory) Add(path, title, html string) *Memory {
	return m.AddRaw(path, title, []byte(html))
}

// AddRaw stores an article with undecoded content.
func (m *Memory) AddRaw(path, title string, content []byte) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[path]; !ok {
		m.order = append(m.order, path)
	}
	m.articles[path] = memoryArticle{title: title, content: content}
	return m
}

// SetMain sets the main article.
func (m *Memory) SetMain(path string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mainPath = path
	return m
}

// Search returns paths whose title or path contains every word of text.
func (m *Memory) Search(_ context.Context, text string, limit int) ([]string, error) {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for _, p := range m.order {
		hay := strings.ToLower(m.articles[p].title + " " + p)
		if containsAll(hay, words) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func containsAll(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

// Article returns the article stored under path.
func (m *Memory) Article(_ context.Context, path string) (*Article, error) {
	m.mu.RLock()
	a, ok := m.articles[path]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(path)
	}
	return decodeArticle(path, a.title, a.content)
}

// RandomPath returns a uniformly chosen article path.
func (m *Memory) RandomPath(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "archive is empty")
	}
	return m.order[rand.IntN(len(m.order))], nil
}

// Info describes the archive.
func (m *Memory) Info(_ context.Context) (*Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info := &Info{
		Title:        m.title,
		UUID:         m.uuid,
		MainPath:     m.mainPath,
		ArticleCount: len(m.order),
		CreatedAt:    m.created,
	}
	if a, ok := m.articles[m.mainPath]; ok {
		info.MainTitle = a.title
	}
	return info, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
