package port

type FileWalker interface {
	Walk(dir string, extensions []string) ([]string, error)
}

type FileReader interface {
	ReadFile(path string) (string, error)
}

type FileWriter interface {
	WriteFile(path string, data []byte) error
}
