package mail

import (
	"strings"

	"github.com/spf13/afero"

	"garmail/internal/config"
)

// Body reads the mail template and substitutes the {name} placeholder when
// present; a template without the placeholder is used verbatim. When the
// template cannot be read the built-in default applies.
func Body(fsys afero.Fs, templatePath, name string) string {
	body := config.DefaultTemplate
	if data, err := afero.ReadFile(fsys, templatePath); err == nil {
		body = string(data)
	}
	if strings.Contains(body, "{name}") {
		return strings.ReplaceAll(body, "{name}", name)
	}
	return body
}
