package marker

// Filename is the fixed name of the root marker.
const Filename = ".arm-root.json"

// File represents .arm-root.json.
type File struct {
	ConfigurationDirectory string `json:"configurationDirectory"`
	Manifest               string `json:"manifest,omitempty"`
	MainPath               string `json:"mainPath,omitempty"`
}

// Main returns the root-relative path of the main repository.
func (f *File) Main() string {
	if f.MainPath != "" {
		return f.MainPath
	}
	return f.ConfigurationDirectory
}
