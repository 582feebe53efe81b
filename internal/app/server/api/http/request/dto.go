package request

import (
	"credshare/internal/domain/request"
)

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Fields       []request.FieldSpec `json:"fields" doc:"Fields the requester wants filled in" minItems:"1"`
	SecretPhrase string              `json:"secret_phrase" doc:"Phrase that will unlock the answers later" minLength:"1"`
}

type createOutput struct {
	Body request.CreateResult
}

type findInput struct {
	ID int `path:"id" example:"1" doc:"Request ID"`
}

type findOutput struct {
	Body request.Item
}

type listOutput struct {
	Body request.ListResponse
}

type fulfillInput struct {
	ID   int `path:"id" example:"1" doc:"Request ID"`
	Body fulfillRequest
}

type fulfillRequest struct {
	Token   string           `json:"token" doc:"Public key token carried in the link fragment" minLength:"1"`
	Answers []request.Answer `json:"answers" doc:"One answer per requested field" minItems:"1"`
}

type rejectInput struct {
	ID   int `path:"id" example:"1" doc:"Request ID"`
	Body rejectRequest
}

type rejectRequest struct {
	Token string `json:"token" doc:"Public key token carried in the link fragment" minLength:"1"`
}

type describeInput struct {
	ID   int `path:"id" example:"1" doc:"Request ID"`
	Body describeRequest
}

type describeRequest struct {
	Token string `json:"token" doc:"Public key token carried in the link fragment" minLength:"1"`
}

type describeOutput struct {
	Body request.Item
}

type revealInput struct {
	ID   int `path:"id" example:"1" doc:"Request ID"`
	Body revealRequest
}

type revealRequest struct {
	SecretPhrase string `json:"secret_phrase" doc:"Phrase chosen at request creation" minLength:"1"`
}

type revealOutput struct {
	Body revealResponse
}

type revealResponse struct {
	Answers []request.Answer `json:"answers"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
