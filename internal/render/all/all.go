// Package all registers every built-in renderer with the render registry.
// Entry points blank-import it so format selection by name works.
package all

import (
	_ "github.com/FocuswithJustin/Tehillim119/internal/render/docx"
	_ "github.com/FocuswithJustin/Tehillim119/internal/render/pdf"
)
