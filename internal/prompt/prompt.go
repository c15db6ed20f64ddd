package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"pharmacy-distance/internal/models"
)

// ErrNoPharmaciesInState means the roster has nothing in the requested state.
// It is a normal way for a session to end.
var ErrNoPharmaciesInState = errors.New("no pharmacies found in state")

const (
	QuestionState  = "What is the patient state? (use 2 letter abbreviation)"
	QuestionStreet = "What is the patient street address?"
	QuestionCity   = "What is the patient city?"
	QuestionZIP    = "What is the patient zip code?"

	MessageNoPharmacies = "No pharmacies found in state"
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask collects the patient's state, street, city and zip in that order. The
// state is checked against the roster before anything else is asked.
func (p *Prompter) Ask(pharmacies []models.Pharmacy) (models.PatientQuery, error) {
	state, err := p.question(QuestionState)
	if err != nil {
		return models.PatientQuery{}, err
	}
	state = strings.ToUpper(state)
	if !models.HasState(pharmacies, state) {
		fmt.Fprintln(p.out, MessageNoPharmacies)
		return models.PatientQuery{}, ErrNoPharmaciesInState
	}

	street, err := p.question(QuestionStreet)
	if err != nil {
		return models.PatientQuery{}, err
	}
	city, err := p.question(QuestionCity)
	if err != nil {
		return models.PatientQuery{}, err
	}
	zip, err := p.question(QuestionZIP)
	if err != nil {
		return models.PatientQuery{}, err
	}

	return models.PatientQuery{
		Address: models.FormatAddress(street, city, state, zip),
		State:   state,
	}, nil
}

func (p *Prompter) question(q string) (string, error) {
	if _, err := fmt.Fprintln(p.out, q); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		// a final answer without a trailing newline still counts
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input closed before %q was answered: %w", q, io.ErrUnexpectedEOF)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
