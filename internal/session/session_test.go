package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/report"
)

func answerPage(t *testing.T, c *Controller, v report.Value) {
	t.Helper()
	for _, id := range c.CurrentPage().QuestionIDs() {
		require.NoError(t, c.Select(id, v))
	}
}

func TestNextBlocksOnIncompletePage(t *testing.T) {
	c := New(checklist.Default(), WithHighlight(time.Hour))

	err := c.Next()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"q1", "q2", "q3", "q4"}, verr.Unanswered)
	require.Equal(t, "Please answer all highlighted questions before continuing.", err.Error())
	require.Equal(t, 0, c.PageIndex())
	require.True(t, c.Flagged("q1"))

	require.NoError(t, c.Select("q1", report.ValueYes))
	require.NoError(t, c.Select("q2", report.ValueYes))
	require.NoError(t, c.Select("q3", report.ValueNo))
	err = c.Next()
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"q4"}, verr.Unanswered)
	require.Equal(t, "Please answer the highlighted question before continuing.", err.Error())
	require.False(t, c.Flagged("q1"))
	require.True(t, c.Flagged("q4"))

	require.NoError(t, c.Select("q4", report.ValueUnknown))
	require.NoError(t, c.Next())
	require.Equal(t, 1, c.PageIndex())
	require.False(t, c.Flagged("q4"), "page change clears flags")
}

func TestFlagsClearAfterHighlight(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := New(checklist.Default(), WithHighlight(20*time.Millisecond))
	require.Error(t, c.Next())
	require.True(t, c.Flagged("q2"))
	require.Eventually(t, func() bool { return !c.Flagged("q2") }, time.Second, 5*time.Millisecond)
}

func TestSelectRejectsUnknownInput(t *testing.T) {
	c := New(checklist.Default())
	require.Error(t, c.Select("q404", report.ValueYes))
	require.Error(t, c.Select("q1", report.Value("maybe")))
	_, ok := c.Selection("q1")
	require.False(t, ok)
}

func TestBindingsFollowPage(t *testing.T) {
	c := New(checklist.Default())

	first := c.Bindings()
	require.Len(t, first, 1)
	require.Equal(t, ActionNext, first[0].Action)
	_, ok := c.Lookup('b')
	require.False(t, ok, "no back control on the first page")

	for i := 0; i < 4; i++ {
		answerPage(t, c, report.ValueYes)
		require.NoError(t, c.Next())
	}
	require.True(t, c.IsLastPage())

	b, ok := c.Lookup('n')
	require.True(t, ok)
	require.Equal(t, ActionComplete, b.Action)
	require.Equal(t, "Complete Assessment", b.Label)
	require.Equal(t, c.Bindings(), c.Bindings())

	back, ok := c.Lookup('b')
	require.True(t, ok)
	_, err := c.Dispatch(back.Action)
	require.NoError(t, err)
	require.Equal(t, 3, c.PageIndex())
}

func TestCompleteAndRestart(t *testing.T) {
	c := New(checklist.Default())
	require.Nil(t, c.Results())

	_, err := c.Complete()
	require.ErrorIs(t, err, ErrNotLastPage)

	for i := 0; i < 5; i++ {
		answerPage(t, c, report.ValueYes)
		if i < 4 {
			require.NoError(t, c.Next())
		}
	}
	require.Equal(t, "Page 5 of 5", c.Progress().Label)

	out, err := c.Dispatch(ActionComplete)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, 20, out.Results.Overall.Total)
	require.Equal(t, report.RiskLow, out.Risk.Level)
	require.Same(t, out, c.Results())
	require.Equal(t, "Assessment Complete", c.Progress().Label)
	require.Equal(t, 1.0, c.Progress().Fraction)

	c.Restart()
	require.Nil(t, c.Results())
	require.Equal(t, 0, c.PageIndex())
	require.Empty(t, c.Form())
	require.Equal(t, "Page 1 of 5", c.Progress().Label)
}

func TestFormFollowsBankOrder(t *testing.T) {
	c := New(checklist.Default())
	require.NoError(t, c.Select("q3", report.ValueNo))
	require.NoError(t, c.Select("q1", report.ValueYes))

	form := c.Form()
	require.Len(t, form, 2)
	require.Equal(t, "q1", form[0].Name)
	require.Equal(t, "q3", form[1].Name)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := New(checklist.Default())
	b := New(checklist.Default())
	require.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.Select("q1", report.ValueYes))
	_, ok := b.Selection("q1")
	require.False(t, ok)
}
