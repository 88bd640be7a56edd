package event

func cacheKeyEventDetails(id string) string {
	return "event:details:" + id
}
