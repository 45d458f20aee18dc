package ui

// refreshedMsg reports the outcome of refreshing a resource store.
type refreshedMsg struct {
	resource string
	err      error
}

// submitDoneMsg reports the outcome of a form submit, including the
// refetch that follows a successful mutation.
type submitDoneMsg struct {
	err error
}

// deleteDoneMsg reports the outcome of a delete plus refetch.
type deleteDoneMsg struct {
	err error
}
