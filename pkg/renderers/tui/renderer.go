package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-qrform/pkg/model"
	"github.com/goliatone/go-qrform/pkg/render"
)

const defaultMaxRounds = 5

// Renderer implements render.Renderer for terminal-driven sessions. Render
// prompts every field of the form and serializes the answers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	validator         Validator
	maxRounds         int
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxRounds:    defaultMaxRounds,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render collects values and serializes them in the configured format.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}

	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// Collect prompts every field in form order. opts.Values seed the defaults and
// opts.Errors are shown before the matching prompt. Field rules are enforced
// per answer; the configured Validator then checks the whole set and sends
// failing fields back for another round.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(opts.Values, opts.Errors)
	rulesCache := make(map[string]validationRules)

	if form.Summary != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+form.Summary); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	pending := form.Fields
	for round := 0; ; round++ {
		for _, field := range pending {
			if err := r.promptField(ctx, field, state, rulesCache); err != nil {
				return nil, err
			}
		}

		if r.validator == nil {
			return state.Values(), nil
		}
		problems := r.validator(state.Values())
		if len(problems) == 0 {
			return state.Values(), nil
		}
		if round+1 >= r.maxRounds {
			return nil, ErrTooManyAttempts
		}

		state.SetErrors(problems)
		pending = pending[:0:0]
		for _, field := range form.Fields {
			if len(problems[field.Name]) > 0 {
				pending = append(pending, field)
			}
		}
		if len(pending) == 0 {
			// Problems that no prompt can fix.
			return nil, fmt.Errorf("tui: %s", strings.Join(flattenProblems(problems), "; "))
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State, rulesCache map[string]validationRules) error {
	for _, message := range state.ErrorsFor(field.Name) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}

	switch {
	case field.Type == model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, state)
	case len(field.Options) > 0 || len(field.Enum) > 0:
		return r.promptEnum(ctx, field, state)
	default:
		return r.promptString(ctx, field, state, collectValidationRules(field, rulesCache))
	}
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, state *State, rules validationRules) error {
	label := displayLabel(field)
	help := displayHelp(field)
	defaultVal := defaultStringValue(state, field)

	usePassword := field.Format == model.FormatPassword || field.UIHints["widget"] == "password"
	isTextArea := field.Format == model.FormatTextarea || field.UIHints["widget"] == "textarea"

	for {
		var (
			response string
			err      error
		)
		cfg := InputConfig{
			Message: label,
			Default: defaultVal,
			Help:    help,
		}
		switch {
		case usePassword:
			response, err = r.driver.Password(ctx, cfg)
		case isTextArea:
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: defaultVal,
				Help:    help,
			})
		default:
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		if !rules.required && strings.TrimSpace(response) == "" {
			state.SetValue(field.Name, response)
			return nil
		}

		if err := rules.validateString(response); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s%s %v", r.theme.ErrorPrefix, label, err))
			continue
		}

		state.SetValue(field.Name, response)
		return nil
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, state *State) error {
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultBoolValue(state, field),
		Help:    displayHelp(field),
	})
	if err != nil {
		return err
	}
	state.SetValue(field.Name, resp)
	return nil
}

func (r *Renderer) promptEnum(ctx context.Context, field model.Field, state *State) error {
	label := displayLabel(field)
	values, labels := enumChoices(field)
	defaultIdx := indexOf(values, defaultStringValue(state, field))

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         displayHelp(field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s selection", r.theme.ErrorPrefix, label))
			continue
		}
		state.SetValue(field.Name, values[idx])
		return nil
	}
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.UIHints["helpText"]; h != "" {
		return h
	}
	return field.Description
}

// enumChoices returns option values and their display labels.
func enumChoices(field model.Field) (values, labels []string) {
	if len(field.Options) > 0 {
		for _, option := range field.Options {
			values = append(values, option.Value)
			labels = append(labels, option.Label)
		}
		return values, labels
	}
	for _, v := range field.Enum {
		s := fmt.Sprint(v)
		values = append(values, s)
		labels = append(labels, s)
	}
	return values, labels
}

func defaultStringValue(state *State, field model.Field) string {
	if v, ok := state.GetValue(field.Name); ok && v != nil {
		return fmt.Sprint(v)
	}
	if field.Default != nil {
		return fmt.Sprint(field.Default)
	}
	return ""
}

func defaultBoolValue(state *State, field model.Field) bool {
	v, ok := state.GetValue(field.Name)
	if !ok {
		v = field.Default
	}
	switch typed := v.(type) {
	case bool:
		return typed
	case string:
		b, err := strconv.ParseBool(typed)
		return err == nil && b
	default:
		return false
	}
}

type validationRules struct {
	required bool
	minLen   *int
	pattern  *regexp.Regexp
}

func collectValidationRules(field model.Field, cache map[string]validationRules) validationRules {
	if rules, ok := cache[field.Name]; ok {
		return rules
	}
	rules := validationRules{required: field.Required}
	for _, v := range field.Validations {
		switch v.Kind {
		case model.ValidationRuleMinLength:
			if val, err := strconv.Atoi(v.Params["value"]); err == nil {
				rules.minLen = &val
			}
		case model.ValidationRulePattern:
			if expr := v.Params["pattern"]; expr != "" {
				if re, err := regexp.Compile(expr); err == nil {
					rules.pattern = re
				}
			}
		}
	}
	cache[field.Name] = rules
	return rules
}

func (r validationRules) validateString(value string) error {
	if r.required && strings.TrimSpace(value) == "" {
		return errors.New("is required")
	}
	if r.minLen != nil && utf8.RuneCountInString(value) < *r.minLen {
		return fmt.Errorf("must be at least %d characters", *r.minLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return errors.New("has an invalid format")
	}
	return nil
}

func flattenProblems(problems map[string][]string) []string {
	var out []string
	for _, name := range sortedKeys(problems) {
		for _, message := range problems[name] {
			out = append(out, message)
		}
	}
	return out
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, fmt.Sprint(value))
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	for _, key := range sortedKeys(values) {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
