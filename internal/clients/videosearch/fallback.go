package videosearch

import (
	"strings"

	"github.com/learntrail/backend/internal/models"
)

// The fallback catalog guarantees a non-empty playlist when the search API
// quota is exhausted: a small set of topic-tagged sample videos scored
// against the query, with per-bucket defaults when nothing matches.

const (
	bucketReact      = "react"
	bucketPython     = "python"
	bucketJava       = "java"
	bucketJavaScript = "javascript"
	bucketWeb        = "web"
	bucketMobile     = "mobile"
	bucketDatabase   = "database"
	bucketGeneral    = "general"
)

const (
	bucketMatchScore      = 150
	conceptCooccurBonus   = 50
	keywordLengthMultiple = 2
)

// bucketRule maps a query substring to a technology bucket. Rules are
// evaluated in order; the first match wins, so "javascript" must precede
// "java".
type bucketRule struct {
	substring string
	bucket    string
}

var bucketRules = []bucketRule{
	{"react", bucketReact},
	{"python", bucketPython},
	{"javascript", bucketJavaScript},
	{"typescript", bucketJavaScript},
	{"node", bucketJavaScript},
	{"java", bucketJava},
	{"html", bucketWeb},
	{"css", bucketWeb},
	{"web", bucketWeb},
	{"android", bucketMobile},
	{"ios", bucketMobile},
	{"flutter", bucketMobile},
	{"mobile", bucketMobile},
	{"sql", bucketDatabase},
	{"database", bucketDatabase},
	{"mongo", bucketDatabase},
}

// conceptKeywords earn a co-occurrence bonus when present in both the query
// and a catalog entry's keywords
var conceptKeywords = []string{"component", "props", "state", "function", "variable", "loop"}

type catalogEntry struct {
	item     models.VideoItem
	bucket   string
	keywords []string
}

var fallbackCatalog = []catalogEntry{
	{
		item: models.VideoItem{
			ID: "fb-react-crash", Title: "React Crash Course for Beginners",
			VideoURL: "https://www.youtube.com/watch?v=fb-react-crash", Duration: "1:28:42", DurationMinutes: 89,
			Description: "Components, props and state from zero.", ChannelTitle: "Dev Essentials", PublishedAt: "2023-04-11T00:00:00Z",
		},
		bucket:   bucketReact,
		keywords: []string{"react", "component", "props", "state", "jsx"},
	},
	{
		item: models.VideoItem{
			ID: "fb-react-hooks", Title: "React Hooks Deep Dive",
			VideoURL: "https://www.youtube.com/watch?v=fb-react-hooks", Duration: "52:17", DurationMinutes: 52,
			Description: "useState, useEffect and custom hooks explained.", ChannelTitle: "Dev Essentials", PublishedAt: "2023-07-02T00:00:00Z",
		},
		bucket:   bucketReact,
		keywords: []string{"react", "hooks", "state", "effect"},
	},
	{
		item: models.VideoItem{
			ID: "fb-python-basics", Title: "Python for Absolute Beginners",
			VideoURL: "https://www.youtube.com/watch?v=fb-python-basics", Duration: "2:04:55", DurationMinutes: 125,
			Description: "Variables, loops and functions in Python.", ChannelTitle: "Code School", PublishedAt: "2022-11-20T00:00:00Z",
		},
		bucket:   bucketPython,
		keywords: []string{"python", "variable", "loop", "function", "basics"},
	},
	{
		item: models.VideoItem{
			ID: "fb-python-oop", Title: "Object-Oriented Python Explained",
			VideoURL: "https://www.youtube.com/watch?v=fb-python-oop", Duration: "47:30", DurationMinutes: 48,
			Description: "Classes, inheritance and dunder methods.", ChannelTitle: "Code School", PublishedAt: "2023-01-14T00:00:00Z",
		},
		bucket:   bucketPython,
		keywords: []string{"python", "class", "object", "oop"},
	},
	{
		item: models.VideoItem{
			ID: "fb-java-course", Title: "Java Full Course for Beginners",
			VideoURL: "https://www.youtube.com/watch?v=fb-java-course", Duration: "3:12:08", DurationMinutes: 192,
			Description: "Syntax, types, loops and methods in Java.", ChannelTitle: "JVM Academy", PublishedAt: "2022-08-05T00:00:00Z",
		},
		bucket:   bucketJava,
		keywords: []string{"java", "loop", "function", "class", "basics"},
	},
	{
		item: models.VideoItem{
			ID: "fb-js-fundamentals", Title: "JavaScript Fundamentals",
			VideoURL: "https://www.youtube.com/watch?v=fb-js-fundamentals", Duration: "1:40:21", DurationMinutes: 100,
			Description: "Variables, functions, arrays and objects.", ChannelTitle: "Frontend Lab", PublishedAt: "2023-02-27T00:00:00Z",
		},
		bucket:   bucketJavaScript,
		keywords: []string{"javascript", "variable", "function", "array", "object"},
	},
	{
		item: models.VideoItem{
			ID: "fb-js-async", Title: "Async JavaScript: Promises and await",
			VideoURL: "https://www.youtube.com/watch?v=fb-js-async", Duration: "38:45", DurationMinutes: 39,
			Description: "Callbacks, promises and async/await.", ChannelTitle: "Frontend Lab", PublishedAt: "2023-05-19T00:00:00Z",
		},
		bucket:   bucketJavaScript,
		keywords: []string{"javascript", "async", "promise", "function"},
	},
	{
		item: models.VideoItem{
			ID: "fb-web-html-css", Title: "HTML & CSS Crash Course",
			VideoURL: "https://www.youtube.com/watch?v=fb-web-html-css", Duration: "1:15:33", DurationMinutes: 76,
			Description: "Build and style your first web page.", ChannelTitle: "Frontend Lab", PublishedAt: "2022-09-30T00:00:00Z",
		},
		bucket:   bucketWeb,
		keywords: []string{"html", "css", "web", "layout"},
	},
	{
		item: models.VideoItem{
			ID: "fb-mobile-flutter", Title: "Flutter Mobile App Tutorial",
			VideoURL: "https://www.youtube.com/watch?v=fb-mobile-flutter", Duration: "1:57:02", DurationMinutes: 117,
			Description: "Build a cross-platform mobile app.", ChannelTitle: "App Foundry", PublishedAt: "2023-03-08T00:00:00Z",
		},
		bucket:   bucketMobile,
		keywords: []string{"flutter", "mobile", "app", "widget"},
	},
	{
		item: models.VideoItem{
			ID: "fb-db-sql", Title: "SQL Tutorial for Beginners",
			VideoURL: "https://www.youtube.com/watch?v=fb-db-sql", Duration: "1:22:10", DurationMinutes: 82,
			Description: "Queries, joins and indexes.", ChannelTitle: "Data Camp Hub", PublishedAt: "2022-12-01T00:00:00Z",
		},
		bucket:   bucketDatabase,
		keywords: []string{"sql", "database", "query", "join"},
	},
	{
		item: models.VideoItem{
			ID: "fb-general-cs", Title: "Computer Science Basics",
			VideoURL: "https://www.youtube.com/watch?v=fb-general-cs", Duration: "1:05:45", DurationMinutes: 66,
			Description: "How computers and programs work.", ChannelTitle: "Code School", PublishedAt: "2022-06-17T00:00:00Z",
		},
		bucket:   bucketGeneral,
		keywords: []string{"programming", "computer", "basics", "algorithm"},
	},
}

// bucketDefaults maps each bucket to the catalog entry returned when
// scoring finds nothing
var bucketDefaults = map[string]string{
	bucketReact:      "fb-react-crash",
	bucketPython:     "fb-python-basics",
	bucketJava:       "fb-java-course",
	bucketJavaScript: "fb-js-fundamentals",
	bucketWeb:        "fb-web-html-css",
	bucketMobile:     "fb-mobile-flutter",
	bucketDatabase:   "fb-db-sql",
	bucketGeneral:    "fb-general-cs",
}

// genericPlaceholder is returned for queries with no recognized programming
// keyword at all
var genericPlaceholder = models.VideoItem{
	ID: "fb-programming-fundamentals", Title: "Programming Fundamentals",
	VideoURL: "https://www.youtube.com/watch?v=fb-programming-fundamentals", Duration: "58:20", DurationMinutes: 58,
	Description: "Core concepts shared by every programming language.", ChannelTitle: "Code School", PublishedAt: "2022-05-03T00:00:00Z",
}

// SelectFallback deterministically picks a catalog video for the query,
// skipping already-used IDs. Never returns an empty result.
func SelectFallback(queryTitle string, excludedVideoIDs []string) models.VideoItem {
	query := strings.ToLower(queryTitle)
	bucket := classifyBucket(query)

	excluded := make(map[string]bool, len(excludedVideoIDs))
	for _, id := range excludedVideoIDs {
		excluded[id] = true
	}

	bestScore := 0
	var best *catalogEntry
	for i := range fallbackCatalog {
		entry := &fallbackCatalog[i]
		if excluded[entry.item.ID] {
			continue
		}
		score := scoreEntry(entry, query, bucket)
		// strictly greater keeps catalog order as the tie-breaker
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if best != nil {
		return best.item
	}

	if bucket == bucketGeneral && !hasProgrammingKeyword(query) {
		return genericPlaceholder
	}
	return defaultForBucket(bucket)
}

// classifyBucket maps the query to a coarse technology bucket via ordered
// substring matching; the first matching rule wins
func classifyBucket(query string) string {
	for _, rule := range bucketRules {
		if strings.Contains(query, rule.substring) {
			return rule.bucket
		}
	}
	return bucketGeneral
}

func scoreEntry(entry *catalogEntry, query, bucket string) int {
	score := 0
	if entry.bucket == bucket {
		score += bucketMatchScore
	}
	for _, keyword := range entry.keywords {
		if strings.Contains(query, keyword) {
			score += len(keyword) * keywordLengthMultiple
		}
	}
	for _, concept := range conceptKeywords {
		if strings.Contains(query, concept) && containsKeyword(entry.keywords, concept) {
			score += conceptCooccurBonus
		}
	}
	return score
}

func containsKeyword(keywords []string, keyword string) bool {
	for _, k := range keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// hasProgrammingKeyword reports whether the query mentions any recognized
// technology or programming concept
func hasProgrammingKeyword(query string) bool {
	for _, rule := range bucketRules {
		if strings.Contains(query, rule.substring) {
			return true
		}
	}
	for _, concept := range conceptKeywords {
		if strings.Contains(query, concept) {
			return true
		}
	}
	return strings.Contains(query, "programming") || strings.Contains(query, "code") ||
		strings.Contains(query, "software") || strings.Contains(query, "algorithm")
}

func defaultForBucket(bucket string) models.VideoItem {
	id, ok := bucketDefaults[bucket]
	if !ok {
		return genericPlaceholder
	}
	for i := range fallbackCatalog {
		if fallbackCatalog[i].item.ID == id {
			return fallbackCatalog[i].item
		}
	}
	return genericPlaceholder
}
