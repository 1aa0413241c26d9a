package curriculum

// SubjectFile is one catalog YAML file: the syllabus topics of a subject in
// study order.
type SubjectFile struct {
	Subject string  `yaml:"subject"`
	Topics  []Topic `yaml:"topics"`
}

// Topic is a syllabus chapter.
type Topic struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}
