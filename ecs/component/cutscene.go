package component

// Cutscene runs a tengo script once per frame until the script calls
// finish.
type Cutscene struct {
	Name     string
	Source   []byte
	Frame    int
	Finished bool
}

var CutsceneComponent = NewComponent[Cutscene]("cutscene")
