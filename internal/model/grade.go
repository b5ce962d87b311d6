package model

// Grade is an ordinal performance label derived from the predicted-vs-contract
// percentage. Keep these values stable; they are part of the API and CSV output.
type Grade string

const (
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeB      Grade = "B"
	GradeC      Grade = "C"
	GradeD      Grade = "D"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{GradeA, GradeAMinus, GradeB, GradeC, GradeD}

// Rank returns 0 for the best grade and increases as the grade worsens.
// Unknown grades rank after D.
func (g Grade) Rank() int {
	for i, v := range Grades {
		if v == g {
			return i
		}
	}
	return len(Grades)
}

// Valid reports whether g is one of the known grades.
func (g Grade) Valid() bool {
	return g.Rank() < len(Grades)
}

// Assessment is the outcome of grading one (predicted, contract) pair.
type Assessment struct {
	Grade      Grade
	Percentage float64 // predicted / contract * 100
	Band       string  // excellent, good, average, below-average, poor
	Reason     string  // optional explanation
}
