package api

// DefaultBaseURL is the server login offers when none is entered.
const DefaultBaseURL = "http://localhost:5001"
