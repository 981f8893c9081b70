package am

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/typegen"
	"github.com/teranos/shapeshare/version"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("qualified", func(fl validator.FieldLevel) bool {
		return typegen.QualifiedName.MatchString(fl.Field().String())
	})
	v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return typegen.Identifier.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks that the configuration is usable for a generate run.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs)
		}
		return errors.Mark(errors.Wrap(err, "validate config"), errors.ErrInvalidConfig)
	}

	if len(c.Generate.Languages) == 0 {
		return errors.WithHint(
			errors.NewInvalidConfigError("generate.languages cannot be empty"),
			`set languages = ["kotlin", "scala"] under [generate]`,
		)
	}
	if c.Enabled("scala") && c.Scala.Package == "" {
		return errors.WithHint(
			errors.NewInvalidConfigError("scala.package cannot be empty when scala is enabled"),
			"set scala.package in shapeshare.toml",
		)
	}
	if _, err := typegen.ParsePolicy(c.Generate.Policy); err != nil {
		return err
	}

	ok, err := version.Satisfies(c.Generate.MinVersion)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithHint(
			errors.NewInvalidConfigError("shapeshare %s does not satisfy generate.min_version %q",
				version.Version, c.Generate.MinVersion),
			"upgrade shapeshare or relax min_version",
		)
	}
	return nil
}

func fieldError(verrs validator.ValidationErrors) error {
	var msgs []string
	for _, fe := range verrs {
		key := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
		msgs = append(msgs, key+": "+describe(fe))
	}
	return errors.NewInvalidConfigError("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ") + ", got " + quote(fe.Value())
	case "qualified":
		return "must be a dotted package name, got " + quote(fe.Value())
	case "identifier":
		return "must be an identifier, got " + quote(fe.Value())
	}
	return "failed " + fe.Tag() + " check"
}

func quote(v interface{}) string {
	if s, ok := v.(string); ok {
		return `"` + s + `"`
	}
	return "value"
}
