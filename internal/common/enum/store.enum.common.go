package enum

type StoreEnum string

const (
	MEMORY_STORE StoreEnum = "memory"
	REDIS_STORE  StoreEnum = "redis"
)

func (e StoreEnum) ToString() string {
	switch e {
	case MEMORY_STORE:
		return "memory"
	case REDIS_STORE:
		return "redis"
	}
	return ""
}

func (e StoreEnum) IsValid() bool {
	switch e {
	case MEMORY_STORE, REDIS_STORE:
		return true
	}
	return false
}
