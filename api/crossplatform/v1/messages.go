package crossplatformv1

// Resource is the wire form of a stored resource.
type Resource struct {
	Id      int32  `json:"id"`
	Payload string `json:"payload"`
}

func (r *Resource) GetId() int32 {
	if r == nil {
		return 0
	}
	return r.Id
}

func (r *Resource) GetPayload() string {
	if r == nil {
		return ""
	}
	return r.Payload
}

type GetRequest struct {
	Id int32 `json:"id"`
}

// SaveRequest carries the resource to store. A nil Resource is rejected by
// the server with codes.InvalidArgument.
type SaveRequest struct {
	Resource *Resource `json:"resource"`
}

type SaveResponse struct{}

type GetListRequest struct{}

type GetListResponse struct {
	Resources []*Resource `json:"resources"`
}

type PingRequest struct{}

type PingResponse struct {
	Ok bool `json:"ok"`
}
