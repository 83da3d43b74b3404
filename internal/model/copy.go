package model

// User-facing Telugu strings.
const (
	SystemPrompt = "నీ పేరు దీప్తి. నువ్వు తెలుగులో నైజంగా మాట్లాడే సహాయక AI. వినియోగదారుడికి శ్రద్ధగా, వినయంగా, స్పష్టంగా సమాధానం ఇవ్వాలి. అవసరమైతే చిన్న చిన్న తెలుగు-ఆంగ్ల మిశ్రమ పదాలు వాడవచ్చు కానీ మొత్తం స్పందన తెలుగులోనే ఇవ్వాలి. తప్పులు ఉన్నట్లు అనిపిస్తే స్పష్టం చేయాలి. సంభాషణ సాగదీయడానికి ప్రశ్నలకు ఉత్తేజంగా స్పందించు."

	// FallbackReply is served when no provider call can be made or the provider returns no text.
	FallbackReply = "క్షమించండి, ప్రస్తుతం AI సేవ అందుబాటులో లేదు. కొంతసేపు తర్వాత మళ్లీ ప్రయత్నించండి లేదా అభివృద్ధిపరులు API కీను సరిచూడండి."

	// RelayFailure is the relay's error body when the caught error has no message.
	RelayFailure = "దురదృష్టవశాత్తు, ప్రస్తుతం అభ్యర్థనను చేతగానాం. దయచేసి కొద్దిసేపు తర్వాత ప్రయత్నించండి."

	// ServerNoAnswer is shown by the client for a non-2xx response without an error field.
	ServerNoAnswer = "సర్వర్ సమాధానం ఇవ్వలేకపోయింది."

	// UnexpectedFailure is shown by the client when a failure carries no message at all.
	UnexpectedFailure = "అనుకోని లోపం సంభవించింది. కొద్ది సేపు తర్వాత ప్రయత్నించండి."

	Greeting = "నమస్తే! నేను మీ తెలుగులో మాట్లాడే AI సహాయకుడు. సాధారణ ప్రశ్నల నుండి కథలు, సలహాలు, అనువాదాలు, సృజనాత్మక రచనలు వరకు ఏదైనా అడగండి."
)
