// Package terminology detects domain jargon in explanation text.
//
// A Feynman-style explanation should avoid leaning on unexplained technical
// terms. The detector scans text against a fixed dictionary and reports each
// occurrence together with its position, so the caller can highlight terms
// and compute how jargon-dense an explanation is.
package terminology

import (
	"strings"
	"unicode/utf8"
)

// Item is a single detected term occurrence.
type Item struct {
	// Term is the exact substring as it appears in the source text.
	Term string `json:"term"`
	// Position is the byte offset of the occurrence in the source text.
	Position int `json:"position"`
	// Suggestion is an optional plain-language replacement.
	Suggestion string `json:"suggestion,omitempty"`
}

// dictionary groups known terms by domain. The flattened list below is what
// the detector scans with; categories are kept for display purposes.
var dictionary = map[string][]string{
	"technology": {
		"API", "SDK", "框架", "算法", "数据结构", "数据库", "缓存", "分布式",
		"微服务", "容器", "Docker", "Kubernetes", "CI/CD", "DevOps",
		"前端", "后端", "全栈", "响应式", "异步", "同步", "并发", "多线程",
		"区块链", "智能合约", "加密货币", "NFT", "Web3",
		"机器学习", "深度学习", "神经网络", "人工智能", "AI", "NLP",
		"云计算", "SaaS", "PaaS", "IaaS", "虚拟化",
	},
	"business": {
		"KPI", "ROI", "商业模式", "价值链", "供应链", "B2B", "B2C", "C2C",
		"市场定位", "用户画像", "转化率", "留存率", "DAU", "MAU",
		"MVP", "PMF", "增长黑客", "A/B测试", "数据分析",
	},
	"general": {
		"方法论", "范式", "架构", "设计模式", "最佳实践", "标准化",
		"可扩展性", "可维护性", "可复用性", "耦合", "解耦",
		"抽象", "封装", "继承", "多态", "接口", "实现",
	},
}

// allTerms is the flattened scan list, in stable category-then-definition order.
var allTerms = func() []string {
	var out []string
	for _, cat := range []string{"technology", "business", "general"} {
		out = append(out, dictionary[cat]...)
	}
	return out
}()

// Detect scans text for dictionary terms, case-insensitively. An occurrence
// only counts when the characters immediately before and after it (or the
// string boundaries) are neither ASCII alphanumerics nor CJK ideographs, so
// a term embedded inside a larger word is not reported. Occurrences of
// different terms may overlap.
func Detect(text string) []Item {
	var items []Item
	lower := foldASCII(text)

	for _, term := range allTerms {
		lowerTerm := foldASCII(term)
		for idx := 0; ; {
			rel := strings.Index(lower[idx:], lowerTerm)
			if rel < 0 {
				break
			}
			pos := idx + rel
			end := pos + len(lowerTerm)
			if isBoundary(text, pos, before) && isBoundary(text, end, after) {
				items = append(items, Item{
					Term:     text[pos:end],
					Position: pos,
				})
			}
			idx = end
		}
	}

	return items
}

// Density is the ratio of detected term occurrences to whitespace-delimited
// tokens. Empty or all-whitespace text has density 0.
func Density(text string) float64 {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 0
	}
	return float64(len(Detect(text))) / float64(len(tokens))
}

// Category reports which dictionary group a term belongs to.
func Category(term string) (string, bool) {
	for cat, terms := range dictionary {
		for _, t := range terms {
			if t == term {
				return cat, true
			}
		}
	}
	return "", false
}

// foldASCII lowercases the ASCII letters of s byte by byte. Unlike
// strings.ToLower it never changes byte lengths, so offsets into the result
// remain valid offsets into s. Dictionary terms carry no cased non-ASCII
// letters, so this is all the folding the scan needs.
func foldASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

type side int

const (
	before side = iota
	after
)

// isBoundary reports whether the rune adjacent to byte offset pos (on the
// given side) permits a word boundary there. String edges always do.
func isBoundary(text string, pos int, s side) bool {
	var r rune
	switch s {
	case before:
		if pos == 0 {
			return true
		}
		r, _ = utf8.DecodeLastRuneInString(text[:pos])
	case after:
		if pos >= len(text) {
			return true
		}
		r, _ = utf8.DecodeRuneInString(text[pos:])
	}
	return !isWordRune(r)
}

// isWordRune matches the characters that extend a word: ASCII letters,
// digits, and CJK ideographs (U+4E00..U+9FA5).
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0x4E00 && r <= 0x9FA5:
		return true
	}
	return false
}
