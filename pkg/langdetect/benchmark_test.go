package langdetect

import "testing"

func BenchmarkDetect(b *testing.B) {
	samples := map[string]string{
		"go":     "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}",
		"json":   "{\n  \"name\": \"test\",\n  \"version\": \"1.0.0\"\n}",
		"prose":  "hello there, this is not code",
		"python": "def hello():\n    print(\"hi\")\n",
	}
	for name, code := range samples {
		b.Run(name, func(b *testing.B) {
			for range b.N {
				Detect(code)
			}
		})
	}
}
