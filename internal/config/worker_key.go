package config

type WorkerKeyStruct struct {
	PersistRoadmapsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistRoadmapsQueue: "persist_roadmaps_queue",
}
