package llm

import (
	"strconv"

	log "github.com/sirupsen/logrus"
)

// ModelDescriptor identifies one backend model in the roster.
type ModelDescriptor struct {
	Name        string // display name
	Model       string // model ID sent on the wire
	Description string
}

// DefaultModels is the fixed roster in priority order. The first entry is
// the preferred model; later entries are fallbacks tried when an earlier
// model fails on switchable grounds.
var DefaultModels = []ModelDescriptor{
	{Name: "ERNIE-4.5 Turbo 128K", Model: "ernie-4.5-turbo-128k", Description: "高性能模型，128K上下文（推荐）"},
	{Name: "ERNIE-4.5 Turbo 32K", Model: "ernie-4.5-turbo-32k", Description: "高性能模型，32K上下文"},
	{Name: "ERNIE-X1 Turbo", Model: "ernie-x1-turbo-32k", Description: "ERNIE X1 系列，32K上下文"},
	{Name: "DeepSeek V3.1", Model: "deepseek-v3.1-250821", Description: "DeepSeek 最新版本"},
	{Name: "DeepSeek V3.1 Think", Model: "deepseek-v3.1-think-250821", Description: "DeepSeek 思考增强版"},
	{Name: "DeepSeek R1", Model: "deepseek-r1", Description: "DeepSeek R1 推理模型"},
	{Name: "Qwen3 235B", Model: "qwen3-235b-a22b-instruct-2507", Description: "通义千问 235B 大模型"},
	{Name: "Qwen3 30B", Model: "qwen3-30b-a3b-instruct-2507", Description: "通义千问 30B 模型"},
	{Name: "Kimi K2", Model: "kimi-k2-instruct", Description: "Kimi K2 指令模型"},
	{Name: "Qianfan 推荐", Model: "qianfan-sug-8k", Description: "百度千帆推荐模型"},
	{Name: "ERNIE-4.0 Turbo", Model: "ernie-4.0-turbo-8k", Description: "标准模型"},
	{Name: "ERNIE-3.5", Model: "ernie-3.5-8k", Description: "经济型模型"},
	{Name: "ERNIE-Lite", Model: "ernie-lite-8k", Description: "轻量级模型"},
}

// KeyValue is the small persistence port the roster uses to remember the
// last known-good model index across runs. An absent key is reported as
// ("", nil).
type KeyValue interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// modelIndexKey is where the roster index lives in the key-value store.
const modelIndexKey = "qianfan_model_index"

// Roster is the ordered model list plus its persisted cursor. The cursor is
// a resumption hint, not a correctness invariant: concurrent callers may
// race on it and the failover loop self-corrects.
type Roster struct {
	models []ModelDescriptor
	kv     KeyValue // may be nil; roster then degrades to in-memory defaults
}

// NewRoster builds a roster over the given models, or DefaultModels when
// models is empty. kv may be nil.
func NewRoster(models []ModelDescriptor, kv KeyValue) *Roster {
	if len(models) == 0 {
		models = DefaultModels
	}
	return &Roster{models: models, kv: kv}
}

// Len returns the roster size.
func (r *Roster) Len() int { return len(r.models) }

// Model returns the descriptor at index i.
func (r *Roster) Model(i int) ModelDescriptor { return r.models[i] }

// Models returns a copy of the full descriptor list.
func (r *Roster) Models() []ModelDescriptor {
	out := make([]ModelDescriptor, len(r.models))
	copy(out, r.models)
	return out
}

// CurrentIndex reads the persisted cursor. Missing, unreadable, or
// out-of-range values all fall back to 0. Never fails.
func (r *Roster) CurrentIndex() int {
	if r.kv == nil {
		return 0
	}
	saved, err := r.kv.Get(modelIndexKey)
	if err != nil {
		log.WithError(err).Warn("read model index failed")
		return 0
	}
	if saved == "" {
		return 0
	}
	idx, err := strconv.Atoi(saved)
	if err != nil || idx < 0 || idx >= len(r.models) {
		return 0
	}
	return idx
}

// SaveIndex persists the cursor, best-effort. A persistence failure is
// logged and otherwise ignored so it can never abort an in-flight call.
func (r *Roster) SaveIndex(i int) {
	if r.kv == nil {
		return
	}
	if err := r.kv.Set(modelIndexKey, strconv.Itoa(i)); err != nil {
		log.WithError(err).Warn("save model index failed")
	}
}

// Reset clears the persisted cursor back to the first model.
func (r *Roster) Reset() {
	if r.kv == nil {
		return
	}
	if err := r.kv.Delete(modelIndexKey); err != nil {
		log.WithError(err).Warn("reset model index failed")
	}
}
